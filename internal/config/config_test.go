package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Simulation.RequiredCredits != 120 {
		t.Errorf("RequiredCredits = %d, want 120", cfg.Simulation.RequiredCredits)
	}
	if cfg.Simulation.MaxSemesters != 12 {
		t.Errorf("MaxSemesters = %d, want 12", cfg.Simulation.MaxSemesters)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
simulation:
  required_credits: 60
  max_semesters: 8
  seed: 7
agent:
  probation_gpa: 2.5
paths:
  catalog: /tmp/cat.json
  output_dir: /tmp/out
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Simulation.RequiredCredits != 60 {
		t.Errorf("RequiredCredits = %d, want 60", cfg.Simulation.RequiredCredits)
	}
	if cfg.Simulation.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Simulation.Seed)
	}
	if cfg.Agent.ProbationGPA != 2.5 {
		t.Errorf("ProbationGPA = %v, want 2.5", cfg.Agent.ProbationGPA)
	}
	if cfg.Paths.Catalog != "/tmp/cat.json" {
		t.Errorf("Paths.Catalog = %q", cfg.Paths.Catalog)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched fields keep defaults.
	if cfg.Agent.ProbationStreak != 2 {
		t.Errorf("ProbationStreak = %d, want default 2", cfg.Agent.ProbationStreak)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("simulation: [not a map"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TWINSIM_REQUIRED_CREDITS", "90")
	t.Setenv("TWINSIM_SEED", "99")
	t.Setenv("TWINSIM_OUTPUT_DIR", "/tmp/override")
	t.Setenv("TWINSIM_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.RequiredCredits != 90 {
		t.Errorf("RequiredCredits = %d, want 90", cfg.Simulation.RequiredCredits)
	}
	if cfg.Simulation.Seed != 99 {
		t.Errorf("Simulation.Seed = %d, want 99", cfg.Simulation.Seed)
	}
	if cfg.Synth.Seed != 99 {
		t.Errorf("Synth.Seed = %d, want 99", cfg.Synth.Seed)
	}
	if cfg.Paths.OutputDir != "/tmp/override" {
		t.Errorf("Paths.OutputDir = %q", cfg.Paths.OutputDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("TWINSIM_REQUIRED_CREDITS", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.RequiredCredits != 120 {
		t.Errorf("RequiredCredits = %d, want default 120", cfg.Simulation.RequiredCredits)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimConfig)
		wantErr bool
	}{
		{"defaults", func(c *SimConfig) {}, false},
		{"zero credits", func(c *SimConfig) { c.Simulation.RequiredCredits = 0 }, true},
		{"zero semesters", func(c *SimConfig) { c.Simulation.MaxSemesters = 0 }, true},
		{"bad agent gpa", func(c *SimConfig) { c.Agent.ProbationGPA = 5 }, true},
		{"bad synth range", func(c *SimConfig) { c.Synth.AbilityMin = 2 }, true},
		{"bad log level", func(c *SimConfig) { c.Logging.Level = "verbose" }, true},
		{"empty log level", func(c *SimConfig) { c.Logging.Level = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
