package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the client-side settings. Everything here comes from
// defaults, an optional .env file, then environment overrides.
type Config struct {
	APIBaseURL string `json:"api_base_url"`
	UserID     string `json:"user_id"`
	LogDir     string `json:"log_dir"`
	LogLevel   string `json:"log_level"`
	Debug      bool   `json:"debug"`
	NoClear    bool   `json:"no_clear"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		APIBaseURL: "http://localhost:8000",
		UserID:     "default_user",
		LogDir:     filepath.Join(currentDir, "logs"),
		LogLevel:   "info",
		Debug:      false,
		NoClear:    false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("TRADEDECK_API_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("TRADEDECK_USER"); val != "" {
		c.UserID = val
	}
	if val := os.Getenv("TRADEDECK_LOG_DIR"); val != "" {
		c.LogDir = val
	}
	if val := os.Getenv("TRADEDECK_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("TRADEDECK_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("TRADEDECK_NO_CLEAR"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.NoClear = enabled
		}
	}
}

// EnsureDirectories creates the directories the client writes to.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.LogDir, 0755)
}
