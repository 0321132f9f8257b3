package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, SequenceMemory, cfg.Sequence.Backend)
	assert.Equal(t, EngineGofpdf, cfg.Renderer.Engine)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9090"
quote:
  prefix: "PRE"
  approver_name: "Joana Lima"
sequence:
  backend: redis
  redis_addr: "localhost:6379"
renderer:
  engine: html
  timeout: 45s
log:
  development: true
`), 0o644))

	t.Setenv("QUOTE_PREFIX", "ENV")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CHROME_NO_SANDBOX", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "ENV", cfg.Quote.Prefix)
	assert.Equal(t, "Joana Lima", cfg.Quote.ApproverName)
	assert.Equal(t, "Administrador", cfg.Quote.ApproverTitle)
	assert.Equal(t, SequenceRedis, cfg.Sequence.Backend)
	assert.Equal(t, 3, cfg.Sequence.RedisDB)
	assert.Equal(t, EngineHTML, cfg.Renderer.Engine)
	assert.Equal(t, 45*time.Second, cfg.Renderer.Timeout)
	assert.True(t, cfg.Renderer.NoSandbox)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend": {"SEQUENCE_BACKEND": "etcd"},
		"postgres no dsn": {"SEQUENCE_BACKEND": "postgres"},
		"mysql no dsn":    {"SEQUENCE_BACKEND": "mysql"},
		"redis no addr":   {"SEQUENCE_BACKEND": "redis"},
		"unknown engine":  {"RENDERER_ENGINE": "wkhtmltopdf"},
		"bad bool":        {"CHROME_NO_SANDBOX": "maybe"},
		"bad timeout":     {"RENDER_TIMEOUT": "soon"},
		"bad redis db":    {"REDIS_DB": "zero"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sequence: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
