package config

import (
	"testing"
	"time"
)

var configKeys = []string{
	"GSI_HOST", "GSI_PORT", "STATE_FILE", "GSI_AUTH_TOKEN",
	"REQUEST_TIMEOUT", "SNAPSHOT_DB", "SNAPSHOT_INTERVAL",
	"GSI_CFG_PATH", "LOG_LEVEL",
}

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
}

func TestLoad_Success(t *testing.T) {
	setEnv(t, map[string]string{
		"GSI_HOST":          "0.0.0.0",
		"GSI_PORT":          "9001",
		"STATE_FILE":        "/tmp/state.json",
		"GSI_AUTH_TOKEN":    "secret",
		"REQUEST_TIMEOUT":   "250ms",
		"SNAPSHOT_DB":       "/tmp/snaps.db",
		"SNAPSHOT_INTERVAL": "30s",
		"LOG_LEVEL":         "debug",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "Host", "0.0.0.0", cfg.Host)
	assertEqual(t, "Port", 9001, cfg.Port)
	assertEqual(t, "StateFile", "/tmp/state.json", cfg.StateFile)
	assertEqual(t, "AuthToken", "secret", cfg.AuthToken)
	assertEqual(t, "RequestTimeout", 250*time.Millisecond, cfg.RequestTimeout)
	assertEqual(t, "SnapshotDB", "/tmp/snaps.db", cfg.SnapshotDB)
	assertEqual(t, "SnapshotInterval", 30*time.Second, cfg.SnapshotInterval)
	assertEqual(t, "LogLevel", "debug", cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "Host", "127.0.0.1", cfg.Host)
	assertEqual(t, "Port", 4000, cfg.Port)
	assertEqual(t, "StateFile", "data/game_state.json", cfg.StateFile)
	assertEqual(t, "AuthToken", "", cfg.AuthToken)
	assertEqual(t, "RequestTimeout", 500*time.Millisecond, cfg.RequestTimeout)
	assertEqual(t, "SnapshotDB", "", cfg.SnapshotDB)
	assertEqual(t, "SnapshotInterval", time.Minute, cfg.SnapshotInterval)
	assertEqual(t, "LogLevel", "info", cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setEnv(t, map[string]string{
		"GSI_PORT":        "not-a-number",
		"REQUEST_TIMEOUT": "not-a-duration",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "Port", 4000, cfg.Port)
	assertEqual(t, "RequestTimeout", 500*time.Millisecond, cfg.RequestTimeout)
}

func TestLoad_ValidationFailure(t *testing.T) {
	setEnv(t, map[string]string{
		"GSI_PORT": "70000",
	})

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected error for out-of-range port")
	}
	if cfg != nil {
		t.Error("config should be nil on error")
	}
}

func assertEqual[T comparable](t *testing.T, name string, want, got T) {
	t.Helper()
	if want != got {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}
