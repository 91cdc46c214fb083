package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/socrates/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, "http://localhost:8000/health", c.HealthURL)
	assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 3*time.Second, c.BannerDelay)
	assert.True(t, c.SealToken)
	assert.Equal(t, DefaultStateDir(), c.StateDir)
	assert.NotEqual(t, InMemory, c.StateDir)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvHealthURL, "")
	t.Setenv(EnvStateDir, "")
	t.Setenv(flagx.ConfigEnv, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, DefaultStateDir(), cfg.StateDir, "state is on disk unless opted out")
}

func TestDefaultStateDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	dir := DefaultStateDir()
	assert.Equal(t, "socrates", filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url": "http://json/api",
		"state_dir":    "/from/json",
	})
	t.Setenv(EnvAPIURL, "http://env/api")
	os.Args = []string{"testbin", "-c", path, "-d", "/from/flag"}

	cfg := LoadConfig()
	assert.Equal(t, "http://env/api", cfg.APIBaseURL, "env beats json")
	assert.Equal(t, "/from/flag", cfg.StateDir, "flag beats json")
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://e/api")
	t.Setenv(EnvHealthURL, "http://e/health")
	t.Setenv(EnvStateDir, "/tmp/s")

	cfg := &Config{APIBaseURL: "x", HealthURL: "y", StateDir: "z"}
	parseEnv(cfg)
	assert.Equal(t, &Config{APIBaseURL: "http://e/api", HealthURL: "http://e/health", StateDir: "/tmp/s"}, cfg)
}
