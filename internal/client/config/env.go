package config

import "os"

const (
	EnvAPIURL    = "SOCRATES_API_URL"
	EnvHealthURL = "SOCRATES_HEALTH_URL"
	EnvStateDir  = "SOCRATES_STATE_DIR"
)

// parseEnv overlays non-empty environment variables.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvHealthURL); v != "" {
		cfg.HealthURL = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}
}
