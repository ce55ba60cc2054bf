package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newFromWriter(Config{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("should be filtered")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("should appear")
	require.Contains(t, buf.String(), "should appear")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, parseLevel("bogus").String(), "info")
	assert.Equal(t, parseLevel("debug").String(), "debug")
}
