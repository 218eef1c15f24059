package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": "9090",
		"database_url": "postgres://localhost/skills",
		"use_browser": true,
		"pool_size": 8
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/skills", cfg.DatabaseURL)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 8, cfg.PoolSize)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestMergeEnv_FileWins(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg := Config{Port: "9090"}
	merged := cfg.MergeEnv()

	assert.Equal(t, "9090", merged.Port)
	assert.Equal(t, "postgres://env/db", merged.DatabaseURL)
}

func TestMergeEnv_BoolsOnlyTurnOn(t *testing.T) {
	t.Setenv("USE_BROWSER", "true")
	t.Setenv("DEBUG", "false")

	cfg := Config{Debug: true}
	merged := cfg.MergeEnv()

	assert.True(t, merged.UseBrowser)
	assert.True(t, merged.Debug)
}

func TestNormalize_AppliesDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Normalize())

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultUploadDir, cfg.UploadDir)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
}

func TestNormalize_RejectsNegativeValues(t *testing.T) {
	cfg := Config{PoolSize: -1}
	err := cfg.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool_size")

	cfg = Config{CacheSize: -5}
	err = cfg.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache_size")
}
