package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
version: "1"
server:
  host: 127.0.0.1
  http_port: 8080
  read_timeout: 3s
storage:
  models_dir: /srv/models
log:
  to_file: false
`)

	cfg, err := LoadAndValidate(path)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.HTTPAddr())
	assert.Equal(t, "127.0.0.1:50051", cfg.Server.GRPCAddr())
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout.Std())
	assert.Equal(t, "/srv/models", cfg.Storage.ModelsDir)
	assert.False(t, cfg.Log.ToFile)
	assert.Equal(t, "logs/loanrisk.log", cfg.Log.File)
}

func TestLoadAndValidate_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "version: \"1\"\nmodels: {}\n",
		"bad port":     "server:\n  http_port: 70000\n",
		"bad version":  "version: \"2\"\n",
		"bad timeout":  "server:\n  read_timeout: soon\n",
		"empty dir":    "storage:\n  models_dir: \"\"\n",
		"port as text": "server:\n  grpc_port: high\n",
		"invalid yaml": "server: [\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.Equal(t, "models", cfg.Storage.ModelsDir)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, DefaultHTTPPort(), cfg.Server.HTTPPort)
	assert.Equal(t, DefaultGRPCPort(), cfg.Server.GRPCPort)

	cfg, found, err = LoadOrDefault(writeConfig(t, "server:\n  http_port: 9000\n"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 9000, cfg.Server.HTTPPort)

	_, _, err = LoadOrDefault(writeConfig(t, "bogus: true\n"))
	assert.Error(t, err)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("later")))
}
