package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds token signing settings. It rides the same
// file-plus-environment flow as the rest of Config; the secret has no
// default and is only required when serving authenticated routes.
type JWTConfig struct {
	Secret          string `json:"secret,omitempty"`           // HMAC signing secret
	ExpirationHours int    `json:"expiration_hours,omitempty"` // Token lifetime
}

// DefaultJWTExpirationHours is applied when neither the file nor the
// environment sets a token lifetime.
const DefaultJWTExpirationHours = 24

// jwtFromEnv builds a JWTConfig from environment variables alone.
func jwtFromEnv() JWTConfig {
	cfg := JWTConfig{Secret: os.Getenv("JWT_SECRET")}
	if n, err := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS")); err == nil {
		cfg.ExpirationHours = n
	}
	return cfg
}

// mergeEnv fills empty fields from the environment. The file always wins.
func (c *JWTConfig) mergeEnv(env JWTConfig) {
	if c.Secret == "" {
		c.Secret = env.Secret
	}
	if c.ExpirationHours == 0 {
		c.ExpirationHours = env.ExpirationHours
	}
}

// Normalize applies default values and validates ranges. Commands that
// never issue tokens skip this, so a missing secret only fails at serve
// time.
func (c *JWTConfig) Normalize() error {
	if c.ExpirationHours == 0 {
		c.ExpirationHours = DefaultJWTExpirationHours
	}
	if c.Secret == "" {
		return fmt.Errorf("config error: 'jwt.secret' (or JWT_SECRET) is required")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("config error: 'jwt.expiration_hours' must be at least 1, got %d", c.ExpirationHours)
	}
	return nil
}
