package config

import (
	"os"
	"path/filepath"
	"time"
)

// InMemory as StateDir keeps local state in memory for the lifetime of the
// process. Nothing survives a restart.
const InMemory = ":memory:"

// DefaultStateDir is the per-user state directory, or ".socrates" in the
// working directory when the user config dir is unknown.
func DefaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".socrates"
	}
	return filepath.Join(dir, "socrates")
}

// Config holds runtime settings for the Socrates terminal client.
//
// Fields:
//   - APIBaseURL: base of the REST API; request paths are appended to it.
//   - HealthURL: liveness check, outside the API base.
//   - StateDir: directory of the local state database. Defaults to
//     DefaultStateDir; InMemory keeps state only for the process lifetime.
//   - OnlineCheckInterval: how often the client polls HealthURL.
//   - BannerDelay: how long transient banners stay visible.
//   - LogLevel, LogFile: diagnostics; an empty LogFile logs to stderr.
//   - SealToken: encrypt the stored access token with a per-install key.
type Config struct {
	APIBaseURL          string
	HealthURL           string
	StateDir            string
	OnlineCheckInterval time.Duration
	BannerDelay         time.Duration
	LogLevel            string
	LogFile             string
	SealToken           bool
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.HealthURL = "http://localhost:8000/health"
	c.StateDir = DefaultStateDir()
	c.OnlineCheckInterval = 10 * time.Second
	c.BannerDelay = 3 * time.Second
	c.LogLevel = "info"
	c.LogFile = ""
	c.SealToken = true
}

// LoadConfig applies defaults, then JSON, then environment, then flags.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
