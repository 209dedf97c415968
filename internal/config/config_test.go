package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Theme != nil || cfg.Server.Addr != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := writeConfig(t, `
[practice]
theme = "blue"

[server]
addr = "127.0.0.1:9000"

[log]
level = "debug"
file = "/tmp/typeuber.log"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Theme == nil || *cfg.Practice.Theme != "blue" {
		t.Fatalf("unexpected theme %v", cfg.Practice.Theme)
	}
	if cfg.Server.Addr == nil || *cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %v", cfg.Server.Addr)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected level %v", cfg.Log.Level)
	}
	if cfg.Log.File == nil || *cfg.Log.File != "/tmp/typeuber.log" {
		t.Fatalf("unexpected log file %v", cfg.Log.File)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[practice]\nwords = 10\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigRejectsInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[practice\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestLoadEnvLeavesUnsetNil(t *testing.T) {
	unsetEnv(t, "TYPEUBER_THEME", "TYPEUBER_ADDR", "TYPEUBER_LOG_LEVEL", "TYPEUBER_LOG_FILE")
	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.Theme != nil || cfg.Addr != nil || cfg.LogLevel != nil || cfg.LogFile != nil {
		t.Fatalf("expected nil fields, got %+v", cfg)
	}
}

func TestLoadAppliesEnvOverFile(t *testing.T) {
	path := writeConfig(t, "[practice]\ntheme = \"blue\"\n\n[server]\naddr = \"127.0.0.1:9000\"\n")
	unsetEnv(t, "TYPEUBER_ADDR", "TYPEUBER_LOG_FILE")
	t.Setenv("TYPEUBER_THEME", "green")
	t.Setenv("TYPEUBER_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg.Practice.Theme != "green" {
		t.Fatalf("expected env theme, got %s", *cfg.Practice.Theme)
	}
	if *cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected file addr, got %s", *cfg.Server.Addr)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "warn" {
		t.Fatalf("expected env level, got %v", cfg.Log.Level)
	}
	if cfg.Log.File != nil {
		t.Fatalf("expected no log file, got %s", *cfg.Log.File)
	}
}

type envTestConfig struct {
	Port int `env:"TYPEUBER_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TYPEUBER_TEST_PORT", "not-an-int")
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "typeuber", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "typeuber", "typeuber.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
