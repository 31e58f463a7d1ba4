// Package config loads the daemon's settings: the writable rules
// directory, the ordered read-only rule directories, the debounce
// window, and the audit log path. Settings come from a small YAML
// file, with built-in defaults when the file is absent.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir = "ifw"
	DefaultFile      = "config.yaml"
	DefaultLogFile   = "audit.jsonl"
)

// ReadonlyDirs is the fixed, ordered list of system rule directories.
// They are never watched; every load, including each reload the
// watcher triggers, reads them again along with the writable directory.
var ReadonlyDirs = []string{
	"/system/etc/ifw.d",
	"/system_ext/etc/ifw.d",
	"/product/etc/ifw.d",
	"/odm/etc/ifw.d",
	"/vendor/etc/ifw.d",
}

// Config is the daemon's runtime configuration.
type Config struct {
	// RulesDir is the writable, watched rules directory: the host's
	// data-system directory, sub-path "ifw/".
	RulesDir string `yaml:"rules_dir"`
	// ReadonlyDirs overrides the fixed system list above, mainly for
	// tests; production configs should leave this empty.
	ReadonlyDirs []string `yaml:"readonly_dirs,omitempty"`
	// AuditLogPath is where logged denials/queries are appended.
	AuditLogPath string `yaml:"audit_log_path"`
	// AuditLogMaxBytes rotates the audit log once a write would push
	// it past this size. Zero means the built-in 10MB default.
	AuditLogMaxBytes int64 `yaml:"audit_log_max_bytes,omitempty"`
	// DebounceMillis overrides the fixed 250ms debounce window; present
	// for tests, production configs should leave it at zero (250ms).
	DebounceMillis int `yaml:"debounce_millis,omitempty"`
	// LogLevel is a zerolog level name: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Debounce returns the configured debounce window, or 250ms if unset.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// EffectiveReadonlyDirs returns c.ReadonlyDirs if set, else the fixed
// system list.
func (c *Config) EffectiveReadonlyDirs() []string {
	if len(c.ReadonlyDirs) > 0 {
		return c.ReadonlyDirs
	}
	return ReadonlyDirs
}

// Default returns the out-of-the-box configuration: rules/log under
// dataDir/ifw, the fixed system read-only directories, info logging.
func Default(dataDir string) *Config {
	return &Config{
		RulesDir:     filepath.Join(dataDir, DefaultConfigDir),
		AuditLogPath: filepath.Join(dataDir, DefaultConfigDir, DefaultLogFile),
		LogLevel:     "info",
	}
}

// Load reads a YAML config file at path, falling back to Default(dataDir)
// if the file does not exist. It ensures RulesDir exists before returning.
func Load(path, dataDir string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg := Default(dataDir)
		if err := ensureDir(cfg.RulesDir); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := Default(dataDir)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := ensureDir(cfg.RulesDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0o700)
	}
	return nil
}
