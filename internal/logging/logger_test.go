package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestNew_JSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	ctx := WithComponent(WithContext(context.Background(), New(cfg)), "driver")
	FromContext(ctx).Info().Msg("compiled")

	assert.Contains(t, buf.String(), `"component":"driver"`)
	assert.Contains(t, buf.String(), `"message":"compiled"`)
}

func TestWithSink_AddsSinkField(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	ctx := WithSink(WithContext(context.Background(), New(cfg)), "file")
	FromContext(ctx).Info().Msg("written")

	assert.Contains(t, buf.String(), `"sink":"file"`)
}

func TestFromContext_WithoutLoggerIsNoop(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotPanics(t, func() { log.Info().Msg("dropped") })
}
