package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/x.db
jwt:
  secret: dev
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("request timeout = %v, want 10s", cfg.Server.RequestTimeout)
	}
	if cfg.Redis.DetailTTL != 5*time.Minute {
		t.Errorf("detail ttl = %v, want 5m", cfg.Redis.DetailTTL)
	}
	if cfg.Database.Path != "/tmp/x.db" {
		t.Errorf("path = %q", cfg.Database.Path)
	}
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
database:
  driver: sqlite
jwt:
  secret: short
`)

	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for short JWT secret in release mode")
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: oracle
`)

	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
`)
	t.Setenv("DATABASE_PATH", "/tmp/from-env.db")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("path = %q, want env override", cfg.Database.Path)
	}
}
