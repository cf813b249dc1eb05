package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays NOTEMARKET_* variables; durations use time.ParseDuration
// syntax ("15s").
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
