package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	dataDir := t.TempDir()
	cfg, err := Load(filepath.Join(dataDir, "nonexistent.yaml"), dataDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RulesDir != filepath.Join(dataDir, DefaultConfigDir) {
		t.Errorf("unexpected default RulesDir: %q", cfg.RulesDir)
	}
	if _, err := os.Stat(cfg.RulesDir); err != nil {
		t.Errorf("expected RulesDir to be created, got %v", err)
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("expected default debounce 250ms, got %v", cfg.Debounce())
	}
	if len(cfg.EffectiveReadonlyDirs()) != len(ReadonlyDirs) {
		t.Errorf("expected the fixed system read-only dirs by default")
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "config.yaml")
	content := `
rules_dir: ` + filepath.Join(dataDir, "custom-rules") + `
audit_log_path: ` + filepath.Join(dataDir, "custom-audit.jsonl") + `
debounce_millis: 50
log_level: debug
readonly_dirs:
  - ` + filepath.Join(dataDir, "ro1") + `
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, dataDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RulesDir != filepath.Join(dataDir, "custom-rules") {
		t.Errorf("unexpected RulesDir: %q", cfg.RulesDir)
	}
	if cfg.Debounce() != 50*time.Millisecond {
		t.Errorf("expected 50ms debounce override, got %v", cfg.Debounce())
	}
	if len(cfg.EffectiveReadonlyDirs()) != 1 {
		t.Errorf("expected the single overridden read-only dir")
	}
}
