package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/loanrisk/internal/env"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Production, WithOutput(&buf))

	log.Debug("Hidden")
	log.Info("Model loaded into registry", "model_id", "lda")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Model loaded into registry", record["msg"])
	assert.Equal(t, "lda", record["model_id"])
	assert.NotContains(t, buf.String(), "Hidden")
}

func TestNew_DevelopmentUsesConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Development, WithOutput(&buf), WithLevel(slog.LevelWarn))

	log.Info("Quiet")
	log.Warn("Model not found", "path", "models/lda_model.json")

	assert.NotContains(t, buf.String(), "Quiet")
	assert.Contains(t, buf.String(), "Model not found")
	assert.Contains(t, buf.String(), "models/lda_model.json")
}

func TestNew_LogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loanrisk.log")

	var buf bytes.Buffer
	log := New(env.Production, WithOutput(&buf), WithLogToFile(true), WithLogFile(path))
	log.With("component", "test").Info("Written twice")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Written twice")
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, buf.String(), "Written twice")
}
