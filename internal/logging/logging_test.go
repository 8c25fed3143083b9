package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zerolog.Level
	}{
		{"", DefaultLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"loud", DefaultLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("queue", zerolog.InfoLevel, &buf)

	logger.Debug().Msg("hidden message")
	logger.Info().Msg("visible message")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "visible message")
	assert.Contains(t, out, `"component":"queue"`)
}

func TestConfigureGlobalAndComponent(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriter(&buf)

	level := ConfigureGlobal("debug")
	assert.Equal(t, zerolog.DebugLevel, level)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger := Component("worker")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), `"component":"worker"`)

	ConfigureGlobal("info")
}
