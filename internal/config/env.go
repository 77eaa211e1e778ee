package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/shopspring/decimal"
)

// Env holds settings read from TEAMWORK_* environment variables. Non-empty
// values take precedence over the config file.
type Env struct {
	Company     string        `env:"TEAMWORK_COMPANY"`
	Token       string        `env:"TEAMWORK_TOKEN"`
	BaseURL     string        `env:"TEAMWORK_BASE_URL"`
	HoursPerDay string        `env:"TEAMWORK_HOURS_PER_DAY"`
	LogLevel    string        `env:"TEAMWORK_LOG_LEVEL, default=warn"`
	HTTPTimeout time.Duration `env:"TEAMWORK_HTTP_TIMEOUT, default=30s"`
}

// LoadEnv reads the process environment.
func LoadEnv(ctx context.Context) (Env, error) {
	return LoadEnvFrom(ctx, envconfig.OsLookuper())
}

// LoadEnvFrom reads settings through l.
func LoadEnvFrom(ctx context.Context, l envconfig.Lookuper) (Env, error) {
	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: l,
	}); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	return env, nil
}

// Apply overlays environment settings onto c.
func (c *Config) Apply(env Env) error {
	if env.Company != "" {
		c.Credentials.CompanyID = env.Company
	}
	if env.Token != "" {
		c.Credentials.Token = env.Token
	}
	if env.HoursPerDay != "" {
		h, err := decimal.NewFromString(env.HoursPerDay)
		if err != nil || !h.IsPositive() {
			return fmt.Errorf("TEAMWORK_HOURS_PER_DAY must be a positive number, got %q", env.HoursPerDay)
		}
		c.HoursPerDay = h
	}
	c.BaseURL = env.BaseURL
	c.HTTPTimeout = env.HTTPTimeout
	return nil
}

// Load reads the config file and applies the environment on top.
func Load(ctx context.Context, homeDir string, l envconfig.Lookuper) (*Config, Env, error) {
	cfg, err := Read(homeDir)
	if err != nil {
		return nil, Env{}, err
	}
	env, err := LoadEnvFrom(ctx, l)
	if err != nil {
		return nil, Env{}, err
	}
	if err := cfg.Apply(env); err != nil {
		return nil, Env{}, err
	}
	return cfg, env, nil
}
