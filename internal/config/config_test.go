package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "pdf", cfg.Format)
	assert.Equal(t, 10, cfg.MaxExpandDepth)
	assert.False(t, cfg.Strict)
	assert.Equal(t, 256, cfg.PatternCacheSize)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pdf", cfg.Format)
	assert.Equal(t, 10, cfg.MaxExpandDepth)
}
