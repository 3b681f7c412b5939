package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ConsoleHasSeverityPrefix(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	closer, err := Setup(Options{Console: &buf, NoFile: true})
	require.NoError(t, err)
	defer closer.Close()
	log.Info().Msg("installing zsh")
	log.Warn().Msg("lazygit unavailable")

	// Assert
	out := buf.String()
	assert.Contains(t, out, "INF installing zsh")
	assert.Contains(t, out, "WRN lazygit unavailable")
}

func TestSetup_WritesJSONLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "zshsetup.log")

	closer, err := Setup(Options{Console: &bytes.Buffer{}, LogFile: path})
	require.NoError(t, err)
	log.Info().Str("target", "~/.zshrc").Msg("created")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"target":"~/.zshrc"`)
	assert.Contains(t, string(data), `"run_id"`)
}

func TestSetup_Verbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.InfoLevel},
		{1, zerolog.DebugLevel},
		{2, zerolog.TraceLevel},
		{5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		_, err := Setup(Options{Verbosity: tt.verbosity, Console: &bytes.Buffer{}, NoFile: true})
		require.NoError(t, err)
		assert.Equal(t, tt.want, zerolog.GlobalLevel())
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	LogCommand("brew", []string{"install", "fzf"})

	assert.Contains(t, buf.String(), `"command":"brew"`)
	assert.Contains(t, buf.String(), `"args":["install","fzf"]`)
}
