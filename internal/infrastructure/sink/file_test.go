package sink_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/veil/internal/infrastructure/sink"
	"github.com/bnema/veil/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

const sampleCSS = ".post { filter: blur(15px) !important; }\n"

func TestFileSink_WritesCSS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "veil.css")

	s, err := sink.NewFileSink(path, sink.FormatCSS, "")
	require.NoError(t, err)

	require.NoError(t, s.SetText(testCtx(), sampleCSS))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleCSS, string(data))

	require.NoError(t, s.SetText(testCtx(), ""))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileSink_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veil.css")

	s, err := sink.NewFileSink(path, sink.FormatCSS, "")
	require.NoError(t, err)
	for range 3 {
		require.NoError(t, s.SetText(testCtx(), sampleCSS))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"veil.css", "veil.css.lock"}, names)
}

func TestFileSink_UnwritableDirIsNotReady(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s, err := sink.NewFileSink(filepath.Join(blocker, "veil.css"), sink.FormatCSS, "")
	require.NoError(t, err)

	err = s.SetText(testCtx(), sampleCSS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestNewFileSink_Rejects(t *testing.T) {
	_, err := sink.NewFileSink("", sink.FormatCSS, "")
	assert.Error(t, err)

	_, err = sink.NewFileSink("/tmp/x.css", sink.Format("xml"), "")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := sink.ParseFormat(" UserScript ")
	require.NoError(t, err)
	assert.Equal(t, sink.FormatUserscript, f)

	_, err = sink.ParseFormat("js")
	assert.Error(t, err)
}
