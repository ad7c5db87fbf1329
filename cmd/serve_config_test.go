package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	t.Setenv("EVAC_ADDR", "")
	t.Setenv("EVAC_CACHE_SIZE", "")

	cfg, err := LoadServerConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 128, cfg.CacheSize)
}

func TestLoadServerConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EVAC_ADDR", "9090")
	t.Setenv("EVAC_CACHE_SIZE", "16")

	cfg, err := LoadServerConfig()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr, "a bare port gets a colon")
	assert.Equal(t, 16, cfg.CacheSize)
}

func TestLoadServerConfig_BadCacheSize(t *testing.T) {
	for _, v := range []string{"0", "-3", "lots"} {
		t.Setenv("EVAC_CACHE_SIZE", v)
		_, err := LoadServerConfig()
		assert.Error(t, err, "EVAC_CACHE_SIZE=%q", v)
	}
}
