package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port          string `env:"PORT" env-default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL" env-default:"host=localhost user=postgres password=postgres dbname=petlink port=5432 sslmode=disable"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"secret_key_change_me"`
	SiteURL       string `env:"SITE_URL" env-default:"http://localhost:8080"`
	AllowOrigin   string `env:"ALLOW_ORIGIN" env-default:"*"`
}

// Load reads the typed config from the environment. The .env file, if
// any, is loaded by main before this runs.
func Load() (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %v", err)
	}
	return conf, nil
}
