package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orcamento/go_backend/internal/app/config"
	"orcamento/go_backend/internal/domain/quote"
	"orcamento/go_backend/internal/domain/quote/pdf/gofpdf"
)

func TestNewSequence_Memory(t *testing.T) {
	seq, closeFn, err := NewSequence(context.Background(), config.SequenceConfig{Backend: config.SequenceMemory})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &quote.MemorySequence{}, seq)
	n, err := seq.Next(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNewSequence_Unknown(t *testing.T) {
	_, _, err := NewSequence(context.Background(), config.SequenceConfig{Backend: "etcd"})
	require.Error(t, err)
}

func TestNewGenerator_Gofpdf(t *testing.T) {
	g, closeFn, err := NewGenerator(config.Default(), zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &gofpdf.Generator{}, g)
}

func TestNewGenerator_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.Renderer.Engine = "latex"
	_, _, err := NewGenerator(cfg, zap.NewNop())
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestRun_StartupFailureReturnsError(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SEQUENCE_BACKEND", config.SequenceMemory)
	t.Setenv("RENDERER_ENGINE", config.EngineHTML)
	t.Setenv("CHROME_PATH", filepath.Join(t.TempDir(), "no-such-chrome"))
	t.Setenv("RENDER_TIMEOUT", "5s")

	err := Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renderer html")
}

func TestRun_BadConfigReturnsError(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SEQUENCE_BACKEND", "etcd")

	err := Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
