// Package config loads runtime configuration for the Socrates CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or $SOCRATES_CONFIG.
//  3. Environment: SOCRATES_API_URL, SOCRATES_HEALTH_URL, SOCRATES_STATE_DIR.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string       API base URL (default http://localhost:8000/api)
//	-health string  health check URL (default http://localhost:8000/health)
//	-d string       local state directory (":memory:" keeps it in memory)
//	-i int          online status check interval (seconds)
//	-l string       log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "health_url": "http://localhost:8000/health",
//	  "state_dir": "/home/me/.config/socrates",
//	  "online_check_interval": "10s",
//	  "banner_delay": "3s",
//	  "log_level": "info",
//	  "log_file": "",
//	  "seal_token": true
//	}
package config
