package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/socrates/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string       API base URL
//	-health string  health check URL
//	-d string       local state directory
//	-i int          online check interval (seconds)
//	-l string       log level (debug, info, warn, error)
//
// os.Args is filtered first so -c/-config and unknown flags pass through.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-health", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.HealthURL, "health", cfg.HealthURL, "health check URL")
	fs.StringVar(&cfg.StateDir, "d", cfg.StateDir, "local state directory (\""+InMemory+"\": in memory)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
