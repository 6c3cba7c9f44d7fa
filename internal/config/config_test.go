package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing file")
	}

	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Limits.MaxTokens != 10000 || cfg.Limits.MaxProjects != 2000 {
		t.Errorf("unexpected default limits: %+v", cfg.Limits)
	}
	if cfg.Registry.TokensDir != "tokens" || cfg.Registry.ContractsDir != "contracts" {
		t.Errorf("unexpected default registry paths: %+v", cfg.Registry)
	}
	if cfg.DatabaseEnabled() {
		t.Error("database must be disabled by default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	body := `
registry:
  tokens_dir: /data/tokens
limits:
  max_tokens: 25
  max_projects: -1
database:
  host: db.internal
  user: registry
  name: registry_runs
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry.TokensDir != "/data/tokens" {
		t.Errorf("tokens_dir = %q", cfg.Registry.TokensDir)
	}
	if cfg.Limits.MaxTokens != 25 {
		t.Errorf("max_tokens = %d", cfg.Limits.MaxTokens)
	}
	// Negative caps fall back to the default instead of disabling the cap.
	if cfg.Limits.MaxProjects != 2000 {
		t.Errorf("max_projects = %d, want default 2000", cfg.Limits.MaxProjects)
	}
	// Unset fields keep their defaults.
	if cfg.Registry.ContractsDir != "contracts" {
		t.Errorf("contracts_dir = %q", cfg.Registry.ContractsDir)
	}
	if !cfg.DatabaseEnabled() {
		t.Error("database should be enabled when a host is configured")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("REGISTRY_MAX_TOKENS", "7")
	t.Setenv("REGISTRY_TOKENS_DIR", "/env/tokens")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Limits.MaxTokens != 7 {
		t.Errorf("max_tokens = %d, want env override 7", cfg.Limits.MaxTokens)
	}
	if cfg.Registry.TokensDir != "/env/tokens" {
		t.Errorf("tokens_dir = %q, want env override", cfg.Registry.TokensDir)
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &AppConfig{Database: DatabaseConfig{
		Host: "db.internal", User: "registry", Password: "s3cret", Name: "registry_runs",
	}}
	want := "registry:s3cret@tcp(db.internal:3306)/registry_runs?parseTime=true&charset=utf8mb4"
	if got := cfg.GetDatabaseDSN(true); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
	if got := cfg.GetDatabaseDSN(false); got != "registry:s3cret@tcp(db.internal:3306)/?parseTime=true&charset=utf8mb4" {
		t.Errorf("server DSN = %q", got)
	}
}
