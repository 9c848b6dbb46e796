package config

import "github.com/Skotchmaster/storefront/pkg/config"

type ServiceConfig struct {
	config.Config
}

// Load reads the environment and exits when a required value is missing.
func Load() ServiceConfig {
	cfg := ServiceConfig{Config: config.Load()}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")
	config.MustDiffer(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, "JWT_SECRET", "JWT_REFRESH_SECRET")

	return cfg
}

func (c ServiceConfig) SearchEnabled() bool { return c.ESURL != "" }

func (c ServiceConfig) RedisEnabled() bool { return c.RedisAddr != "" }
