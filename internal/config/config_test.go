package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"EXAMIZ_DB", "EXAMIZ_BANK", "EXAMIZ_MODE", "EXAMIZ_FOCUS", "EXAMIZ_COUNT", "EXAMIZ_STATS_BACKEND", "EXAMIZ_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.Mode != "exam" || cfg.Focus != "smart" || cfg.Count != 10 {
		t.Errorf("session defaults = %q %q %d", cfg.Mode, cfg.Focus, cfg.Count)
	}
	if cfg.StatsBackend != BackendSQLite || cfg.LogLevel != "info" {
		t.Errorf("backend=%q level=%q", cfg.StatsBackend, cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("EXAMIZ_MODE", "practice")
	t.Setenv("EXAMIZ_COUNT", "25")
	t.Setenv("EXAMIZ_STATS_BACKEND", "Redis")
	t.Setenv("EXAMIZ_REDIS_ADDR", "cache:6380")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "practice" || cfg.Count != 25 || cfg.StatsBackend != BackendRedis || cfg.RedisAddr != "cache:6380" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFromEnv_BadCount(t *testing.T) {
	t.Setenv("EXAMIZ_COUNT", "lots")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for non-integer count")
	}
}

func TestValidate_CollectsProblems(t *testing.T) {
	cfg := &Config{Mode: "sprint", Count: 0, StatsBackend: "etcd"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"EXAMIZ_MODE", "EXAMIZ_COUNT", "EXAMIZ_STATS_BACKEND"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EXAMIZ_FOCUS=security\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	// Registers cleanup that restores the variable godotenv is about to set.
	t.Setenv("EXAMIZ_FOCUS", "")
	os.Unsetenv("EXAMIZ_FOCUS")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Focus != "security" {
		t.Errorf("Focus = %q, want security from .env", cfg.Focus)
	}
}

func TestResolveLogFile(t *testing.T) {
	cfg := &Config{}
	if got := cfg.ResolveLogFile("/data/examiz/examiz.db"); got != filepath.Join("/data/examiz", "examiz.log") {
		t.Errorf("ResolveLogFile = %q", got)
	}
	cfg.LogFile = "/tmp/x.log"
	if got := cfg.ResolveLogFile("/data/examiz.db"); got != "/tmp/x.log" {
		t.Errorf("ResolveLogFile = %q", got)
	}
}
