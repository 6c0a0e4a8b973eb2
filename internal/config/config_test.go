package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "STORAGE_KEY", "TRIAL_DAYS", "REDIS_DB", "DEBUG", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.StorageDriver != "sqlite" {
		t.Errorf("StorageDriver = %q, want sqlite", cfg.StorageDriver)
	}
	if cfg.StorageKey != "rewardsprint-storage" {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
	if cfg.TrialDays != 30 {
		t.Errorf("TrialDays = %d, want 30", cfg.TrialDays)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("TRIAL_DAYS", "14")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("DEBUG", "true")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	if cfg.StorageDriver != "redis" {
		t.Errorf("StorageDriver = %q, want redis", cfg.StorageDriver)
	}
	if cfg.TrialDays != 14 {
		t.Errorf("TrialDays = %d, want 14", cfg.TrialDays)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("invalid REDIS_DB should fall back to 0, got %d", cfg.RedisDB)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy should be true")
	}
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("RS_TEST_SET=from-file\nRS_TEST_UNSET=from-file\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("RS_TEST_SET", "from-env")
	t.Setenv("RS_TEST_UNSET", "")

	loadDotEnv(path)

	if got := os.Getenv("RS_TEST_SET"); got != "from-env" {
		t.Errorf("RS_TEST_SET = %q, existing value should win", got)
	}
	if got := os.Getenv("RS_TEST_UNSET"); got != "from-file" {
		t.Errorf("RS_TEST_UNSET = %q, want value from file", got)
	}
}
