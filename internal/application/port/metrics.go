package port

import "time"

// StylesheetMetrics records driver activity.
type StylesheetMetrics interface {
	ObserveCompile(elapsed time.Duration, size int, activeSelectors int)
	ObserveSinkWrite(sink string, err error)
	ObserveSkippedWrite(sink string)
}

// NopStylesheetMetrics discards every observation.
type NopStylesheetMetrics struct{}

func (NopStylesheetMetrics) ObserveCompile(time.Duration, int, int) {}
func (NopStylesheetMetrics) ObserveSinkWrite(string, error)         {}
func (NopStylesheetMetrics) ObserveSkippedWrite(string)             {}
