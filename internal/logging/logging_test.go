package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestSetup_ConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	p := filepath.Join(t.TempDir(), "logs", "mixsplit.log")
	log, closer := Setup(Options{Level: "warn", Console: &buf, File: p, MaxSizeMB: 1, MaxBackups: 1})

	log.Info().Msg("hidden")
	L().Warn().Str("column", "Ticket").Int("rows", 2).Msg("malformed cells")
	require.NoError(t, closer.Close())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "malformed cells")
	assert.Contains(t, out, "column=Ticket")

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"column":"Ticket"`)
	assert.Contains(t, string(b), `"level":"warn"`)
}
