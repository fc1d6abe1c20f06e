package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-premailer/internal/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New("warn", &buf)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("part", "text/html").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "text/html", entry["part"])
	assert.Contains(t, entry, "time")
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New("chatty", &buf)

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Info().Msg("shown")
	assert.Contains(t, buf.String(), `"shown"`)
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewConsole("debug", &buf)

	log.Debug().Str("subject", "Hello").Msg("parsed")
	assert.Contains(t, buf.String(), "parsed")
	assert.Contains(t, buf.String(), "subject=Hello")
}
