package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitlet/pkg/common/logger"
)

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: buf,
	})

	log.Debug("debug message")
	assert.NotContains(t, buf.String(), "debug message")

	log.Info("info message", "component", "graph", "commits", 3)
	out := buf.String()
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "component=graph")
	assert.Contains(t, out, "commits=3")
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatJSON,
		Output: buf,
	})

	log.With("component", "merge").Debug("split point", "commit", "abc123")

	out := buf.String()
	assert.Contains(t, out, `"msg":"split point"`)
	assert.Contains(t, out, `"component":"merge"`)
	assert.Contains(t, out, `"commit":"abc123"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"INFO", logger.LevelInfo, false},
		{" warn ", logger.LevelWarn, false},
		{"warning", logger.LevelWarn, false},
		{"error", logger.LevelError, false},
		{"loud", logger.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := logger.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	f, err = logger.ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatText, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, logger.Default)

	prev := logger.Default
	t.Cleanup(func() { logger.Default = prev })

	buf := &bytes.Buffer{}
	logger.Default = logger.New(logger.Config{Level: logger.LevelInfo, Output: buf})

	logger.Info("hello")
	logger.With("component", "cli").Warn("careful")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "component=cli")
}
