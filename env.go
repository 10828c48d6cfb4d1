package tanod

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// EnvConfig carries the knobs commonly set from the environment.
// Interface-valued options (repository, store, adapters) are wired in
// code; this covers the rest.
type EnvConfig struct {
	SessionTTL     time.Duration `env:"TANOD_SESSION_TTL" envDefault:"24h"`
	BasePath       string        `env:"TANOD_BASE_PATH" envDefault:"/api/auth"`
	CookieName     string        `env:"TANOD_COOKIE_NAME" envDefault:"tanod_session"`
	CookieSecure   bool          `env:"TANOD_COOKIE_SECURE" envDefault:"false"`
	MinPasswordLen int           `env:"TANOD_MIN_PASSWORD_LEN" envDefault:"8"`
}

// LoadEnv reads EnvConfig from TANOD_* environment variables, applying
// defaults for anything unset.
func LoadEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies the environment-sourced values onto an Options value.
func (c *EnvConfig) Apply(opts Options) Options {
	opts.SessionTTL = c.SessionTTL
	opts.BasePath = c.BasePath
	opts.MinPasswordLen = c.MinPasswordLen
	return opts
}
