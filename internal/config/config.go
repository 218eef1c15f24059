// Package config provides configuration loading and validation for the
// service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration. Values can be loaded
// from a JSON file and overridden by environment variables; missing values
// fall back to defaults.
type Config struct {
	// Server
	Port      string `json:"port,omitempty"`       // HTTP listen port
	UploadDir string `json:"upload_dir,omitempty"` // Directory for uploaded documents

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Inference
	APIKey string `json:"api_key,omitempty"` // Gemini API key; empty selects the local provider
	Model  string `json:"model,omitempty"`   // Gemini model override

	// Fetching
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	CacheSize  int  `json:"cache_size,omitempty"`  // Fetched-text cache capacity

	// Workers
	PoolSize int `json:"pool_size,omitempty"` // Concurrent analysis jobs

	// Auth
	JWT JWTConfig `json:"jwt,omitempty"` // Token signing settings

	// Logging
	JSONLogs bool `json:"json_logs,omitempty"` // Emit JSON-encoded logs
	Debug    bool `json:"debug,omitempty"`     // Enable debug-level logging
}

// Default values applied when neither the file nor the environment sets a field.
const (
	DefaultPort      = "8080"
	DefaultUploadDir = "uploads"
	DefaultPoolSize  = 4
	DefaultCacheSize = 128
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() *Config {
	cfg := &Config{
		Port:        os.Getenv("PORT"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       os.Getenv("GEMINI_MODEL"),
		UseBrowser:  envBool("USE_BROWSER"),
		JSONLogs:    envBool("JSON_LOGS"),
		Debug:       envBool("DEBUG"),
		JWT:         jwtFromEnv(),
	}
	if n, err := strconv.Atoi(os.Getenv("POOL_SIZE")); err == nil {
		cfg.PoolSize = n
	}
	if n, err := strconv.Atoi(os.Getenv("CACHE_SIZE")); err == nil {
		cfg.CacheSize = n
	}
	return cfg
}

// MergeEnv returns a copy of c with empty fields filled from the environment.
// Environment values act as defaults; the file always wins.
func (c *Config) MergeEnv() Config {
	result := *c
	env := FromEnv()

	if result.Port == "" {
		result.Port = env.Port
	}
	if result.UploadDir == "" {
		result.UploadDir = env.UploadDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = env.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = env.APIKey
	}
	if result.Model == "" {
		result.Model = env.Model
	}
	if result.PoolSize == 0 {
		result.PoolSize = env.PoolSize
	}
	if result.CacheSize == 0 {
		result.CacheSize = env.CacheSize
	}
	result.JWT.mergeEnv(env.JWT)

	// Bool fields: cannot distinguish unset from false, so the environment
	// can only turn them on.
	if env.UseBrowser {
		result.UseBrowser = true
	}
	if env.JSONLogs {
		result.JSONLogs = true
	}
	if env.Debug {
		result.Debug = true
	}

	return result
}

// Normalize applies default values and validates ranges.
func (c *Config) Normalize() error {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.UploadDir == "" {
		c.UploadDir = DefaultUploadDir
	}
	if c.PoolSize == 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}

	if c.PoolSize < 1 {
		return fmt.Errorf("config error: 'pool_size' must be at least 1, got %d", c.PoolSize)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative, got %d", c.CacheSize)
	}
	return nil
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
