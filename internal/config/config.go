package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host             string
	Port             int
	StateFile        string
	AuthToken        string
	RequestTimeout   time.Duration
	SnapshotDB       string
	SnapshotInterval time.Duration
	GSIConfigPath    string
	LogLevel         string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:             envString("GSI_HOST", "127.0.0.1"),
		Port:             envInt("GSI_PORT", 4000),
		StateFile:        envString("STATE_FILE", "data/game_state.json"),
		AuthToken:        envString("GSI_AUTH_TOKEN", ""),
		RequestTimeout:   envDuration("REQUEST_TIMEOUT", 500*time.Millisecond),
		SnapshotDB:       envString("SNAPSHOT_DB", ""),
		SnapshotInterval: envDuration("SNAPSHOT_INTERVAL", time.Minute),
		GSIConfigPath:    envString("GSI_CFG_PATH", ""),
		LogLevel:         envString("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
