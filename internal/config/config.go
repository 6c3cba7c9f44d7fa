package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Limits caps how much work and memory a single run may consume. Exceeding
// a registry-wide count is fatal, not a per-entry finding.
type Limits struct {
	MaxTokens              int   `yaml:"max_tokens" envconfig:"MAX_TOKENS"`
	MaxProjects            int   `yaml:"max_projects" envconfig:"MAX_PROJECTS"`
	MaxContractsPerProject int   `yaml:"max_contracts_per_project" envconfig:"MAX_CONTRACTS_PER_PROJECT"`
	MaxJSONBytes           int64 `yaml:"max_json_bytes" envconfig:"MAX_JSON_BYTES"`
	MaxSourceBytes         int64 `yaml:"max_source_bytes" envconfig:"MAX_SOURCE_BYTES"`
}

// Registry locates the trees and schema documents a run operates on.
type Registry struct {
	TokensDir     string `yaml:"tokens_dir" envconfig:"TOKENS_DIR"`
	ContractsDir  string `yaml:"contracts_dir" envconfig:"CONTRACTS_DIR"`
	TokenSchema   string `yaml:"token_schema" envconfig:"TOKEN_SCHEMA"`
	ProjectSchema string `yaml:"project_schema" envconfig:"PROJECT_SCHEMA"`
}

// DatabaseConfig is the optional MySQL run-history store. Empty host
// disables persistence entirely.
type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     string `yaml:"port" envconfig:"DB_PORT"`
	User     string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name     string `yaml:"name" envconfig:"DB_NAME"`
}

type LogConfig struct {
	Dir      string `yaml:"dir" envconfig:"LOG_DIR"`
	JSONPath string `yaml:"json_path" envconfig:"LOG_JSON_PATH"`
}

type AppConfig struct {
	Registry          Registry       `yaml:"registry"`
	Limits            Limits         `yaml:"limits"`
	DisposableDomains []string       `yaml:"disposable_domains"`
	Database          DatabaseConfig `yaml:"database"`
	Log               LogConfig      `yaml:"log"`
	ReportDir         string         `yaml:"report_dir" envconfig:"REPORT_DIR"`
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Registry: Registry{
			TokensDir:     "tokens",
			ContractsDir:  "contracts",
			TokenSchema:   "schemas/token.schema.json",
			ProjectSchema: "schemas/contract-project.schema.json",
		},
		Limits: Limits{
			MaxTokens:              10000,
			MaxProjects:            2000,
			MaxContractsPerProject: 50,
			MaxJSONBytes:           256 * 1024,
			MaxSourceBytes:         2 * 1024 * 1024,
		},
		Log:       LogConfig{Dir: "logs"},
		ReportDir: "reports",
	}
}

// LoadConfig reads the YAML settings file, then applies REGISTRY_* env-var
// overrides. A missing file is not an error: defaults apply, so the gate
// runs in CI with no on-disk configuration.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read configuration file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse configuration file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("registry", cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}
	applyFloors(cfg)
	return cfg, nil
}

func findConfigFile() string {
	possiblePaths := []string{
		"config/settings.yaml",
		"settings.yaml",
		"../config/settings.yaml",
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyFloors re-applies defaults for zero or negative tunables so a sparse
// settings file cannot accidentally disable a cap.
func applyFloors(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Limits.MaxTokens <= 0 {
		cfg.Limits.MaxTokens = def.Limits.MaxTokens
	}
	if cfg.Limits.MaxProjects <= 0 {
		cfg.Limits.MaxProjects = def.Limits.MaxProjects
	}
	if cfg.Limits.MaxContractsPerProject <= 0 {
		cfg.Limits.MaxContractsPerProject = def.Limits.MaxContractsPerProject
	}
	if cfg.Limits.MaxJSONBytes <= 0 {
		cfg.Limits.MaxJSONBytes = def.Limits.MaxJSONBytes
	}
	if cfg.Limits.MaxSourceBytes <= 0 {
		cfg.Limits.MaxSourceBytes = def.Limits.MaxSourceBytes
	}
	if cfg.Registry.TokensDir == "" {
		cfg.Registry.TokensDir = def.Registry.TokensDir
	}
	if cfg.Registry.ContractsDir == "" {
		cfg.Registry.ContractsDir = def.Registry.ContractsDir
	}
	if cfg.Registry.TokenSchema == "" {
		cfg.Registry.TokenSchema = def.Registry.TokenSchema
	}
	if cfg.Registry.ProjectSchema == "" {
		cfg.Registry.ProjectSchema = def.Registry.ProjectSchema
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = def.Log.Dir
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = def.ReportDir
	}
}

// GetDatabaseDSN builds the MySQL DSN. withName selects the configured
// database; without it the DSN targets the server for bootstrap.
func (c *AppConfig) GetDatabaseDSN(withName bool) string {
	name := ""
	if withName {
		name = c.Database.Name
	}
	port := c.Database.Port
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User, c.Database.Password, c.Database.Host, port, name)
}

// DatabaseEnabled reports whether run-history persistence is configured.
func (c *AppConfig) DatabaseEnabled() bool {
	return c.Database.Host != ""
}
