package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/greenlight/internal/validate"
)

// DefaultFileName is the config file looked up in the workspace root
const DefaultFileName = ".greenlight.yaml"

// Config holds the engine's tunable settings
type Config struct {
	// WorkspaceRoot is the directory actions are confined to
	WorkspaceRoot string `yaml:"workspace_root"`

	// PlansDir is where plan documents and the index are persisted
	PlansDir string `yaml:"plans_dir"`

	// BackupDir receives pre-overwrite copies of files; empty disables backups
	BackupDir string `yaml:"backup_dir"`

	// AllowExternalPaths permits absolute paths outside the workspace root.
	// Intended for isolated test environments only.
	AllowExternalPaths bool `yaml:"allow_external_paths"`

	// ProtectedFiles are filenames whose modification is always high risk
	ProtectedFiles []string `yaml:"protected_files,omitempty"`

	// VendorDirs are directory names treated as vendor or system territory
	VendorDirs []string `yaml:"vendor_dirs,omitempty"`

	// SizeThresholdBytes is the overwrite size above which risk escalates
	SizeThresholdBytes int64 `yaml:"size_threshold_bytes"`

	// LogLevel is debug, info, warn, or error
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or text
	LogFormat string `yaml:"log_format"`
}

// Default returns a config rooted at the given workspace directory
func Default(workspaceRoot string) *Config {
	return &Config{
		WorkspaceRoot:      workspaceRoot,
		PlansDir:           filepath.Join(workspaceRoot, ".greenlight", "plans"),
		BackupDir:          filepath.Join(workspaceRoot, ".greenlight", "backups"),
		AllowExternalPaths: false,
		ProtectedFiles:     validate.DefaultProtectedFiles,
		VendorDirs:         validate.DefaultVendorDirs,
		SizeThresholdBytes: validate.DefaultSizeThreshold,
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load reads a config from a YAML file, filling unset fields from defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = filepath.Dir(path)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads the workspace config file if present, otherwise
// returns defaults for the workspace
func LoadOrDefault(workspaceRoot string) (*Config, error) {
	path := filepath.Join(workspaceRoot, DefaultFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(workspaceRoot), nil
	}
	return Load(path)
}

// Save writes the config to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued fields from the workspace defaults
func (c *Config) applyDefaults() {
	defaults := Default(c.WorkspaceRoot)
	if c.PlansDir == "" {
		c.PlansDir = defaults.PlansDir
	}
	if c.BackupDir == "" {
		c.BackupDir = defaults.BackupDir
	}
	if len(c.ProtectedFiles) == 0 {
		c.ProtectedFiles = defaults.ProtectedFiles
	}
	if len(c.VendorDirs) == 0 {
		c.VendorDirs = defaults.VendorDirs
	}
	if c.SizeThresholdBytes <= 0 {
		c.SizeThresholdBytes = defaults.SizeThresholdBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
}
