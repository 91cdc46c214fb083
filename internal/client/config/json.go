package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/socrates/internal/flagx"
	"github.com/dmitrijs2005/socrates/internal/timex"
)

// JsonConfig is the on-disk form. Intervals use timex.Duration, so "3s" and
// integer nanoseconds are both accepted.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	HealthURL           string         `json:"health_url"`
	StateDir            string         `json:"state_dir"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	BannerDelay         timex.Duration `json:"banner_delay"`
	LogLevel            string         `json:"log_level"`
	LogFile             string         `json:"log_file"`
	SealToken           *bool          `json:"seal_token"`
}

// parseJson overlays Config with the file named by -c/-config (or
// $SOCRATES_CONFIG). Absent keys keep their current value. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.HealthURL != "" {
		cfg.HealthURL = jc.HealthURL
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.BannerDelay.Duration > 0 {
		cfg.BannerDelay = jc.BannerDelay.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	if jc.SealToken != nil {
		cfg.SealToken = *jc.SealToken
	}
}
