package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel}, // unknown falls back
	}
	for _, tt := range tests {
		log := New(Config{Level: tt.level})
		assert.Equal(t, tt.want, log.GetLevel(), tt.level)
	}
}

func TestNewFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fxbot.log")
	log := New(Config{Level: "info", File: true, FilePath: path})

	log.Info().Str("instrument", "EUR_USD").Msg("cycle complete")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cycle complete")
	assert.Contains(t, string(data), "EUR_USD")
}
