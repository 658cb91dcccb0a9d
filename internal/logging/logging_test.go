package logging

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "default", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.verbose)

			logger.Debug("settings", "path", "genome.fasta")
			logger.Info("scanned", "records", 3)

			out := buf.String()
			require.Contains(t, out, "INF scanned records=3")
			if tt.wantDebug {
				require.Contains(t, out, "DBG settings path=genome.fasta")
			} else {
				require.NotContains(t, out, "settings")
			}
		})
	}
}

func TestNewTerminalHandler_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTerminalHandler(&buf, slog.LevelInfo))

	logger.Warn("careful", "err", "boom")

	require.NotContains(t, buf.String(), "\x1b[")
	require.Contains(t, buf.String(), "WRN careful")
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.False(t, IsTerminal(&buf))

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, IsTerminal(f))
}

func TestUTCTime(t *testing.T) {
	local := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	a := utcTime(nil, slog.Time(slog.TimeKey, local))
	require.Equal(t, time.UTC, a.Value.Time().Location())
	require.True(t, a.Value.Time().Equal(local))

	// Grouped or non-time attributes pass through untouched.
	grouped := utcTime([]string{"g"}, slog.Time(slog.TimeKey, local))
	require.Equal(t, local.Location(), grouped.Value.Time().Location())
	other := utcTime(nil, slog.String("path", "x"))
	require.Equal(t, "x", other.Value.String())
}
