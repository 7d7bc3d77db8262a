// Package config provides unified configuration loading for twinsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
	"github.com/theharshitsuri/digital-twin-sim/internal/synth"
)

// SimConfig contains all twinsim configuration settings.
type SimConfig struct {
	// Simulation contains run-level settings.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Agent contains the per-student progression tunables.
	Agent agent.Config `json:"agent" yaml:"agent"`

	// Synth contains synthetic population generation settings.
	Synth synth.Config `json:"synth" yaml:"synth"`

	// Catalog contains synthetic catalog generation settings.
	Catalog synth.CatalogConfig `json:"catalog" yaml:"catalog"`

	// Paths contains input and output file locations.
	Paths PathsConfig `json:"paths" yaml:"paths"`

	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures a single simulation run.
type SimulationConfig struct {
	// RequiredCredits is the credit total needed to graduate.
	RequiredCredits int `json:"required_credits" yaml:"required_credits"`

	// MaxSemesters caps how many semesters a run may advance.
	MaxSemesters int `json:"max_semesters" yaml:"max_semesters"`

	// Seed seeds the per-student random sources. Runs with the same
	// seed and inputs produce identical trajectories.
	Seed int64 `json:"seed" yaml:"seed"`
}

// PathsConfig locates run inputs and outputs.
type PathsConfig struct {
	// Catalog is the course catalog JSON file.
	Catalog string `json:"catalog" yaml:"catalog"`

	// Profiles is the student profiles JSON file.
	Profiles string `json:"profiles" yaml:"profiles"`

	// OutputDir receives CSV, Arrow, and event log output.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Database is the SQLite results database. Empty disables persistence.
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// LoggingConfig configures twinsim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", "warn", or "error".
	// "debug" enables event logging to <output_dir>/events.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a SimConfig with sensible defaults.
func Default() *SimConfig {
	return &SimConfig{
		Simulation: SimulationConfig{
			RequiredCredits: model.DefaultRequiredCredits,
			MaxSemesters:    model.DefaultMaxSemesters,
			Seed:            42,
		},
		Agent:   agent.DefaultConfig(),
		Synth:   synth.DefaultConfig(),
		Catalog: synth.DefaultCatalogConfig(),
		Paths: PathsConfig{
			Catalog:   "course_catalog.json",
			Profiles:  "student_profiles.json",
			OutputDir: "results",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from an optional file and environment variables.
// Order: defaults -> config file (if path is non-empty) -> environment variables.
func Load(path string) (*SimConfig, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *SimConfig) Validate() error {
	if c.Simulation.RequiredCredits < 1 {
		return fmt.Errorf("required_credits must be >= 1, got %d", c.Simulation.RequiredCredits)
	}

	if c.Simulation.MaxSemesters < 1 {
		return fmt.Errorf("max_semesters must be >= 1, got %d", c.Simulation.MaxSemesters)
	}

	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("agent config: %w", err)
	}

	if err := c.Synth.Validate(); err != nil {
		return fmt.Errorf("synth config: %w", err)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, warn, error, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *SimConfig) {
	if v := os.Getenv("TWINSIM_REQUIRED_CREDITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.RequiredCredits = n
		}
	}

	if v := os.Getenv("TWINSIM_MAX_SEMESTERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.MaxSemesters = n
		}
	}

	if v := os.Getenv("TWINSIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Simulation.Seed = n
			config.Synth.Seed = n
			config.Catalog.Seed = n
		}
	}

	if v := os.Getenv("TWINSIM_CATALOG"); v != "" {
		config.Paths.Catalog = v
	}

	if v := os.Getenv("TWINSIM_PROFILES"); v != "" {
		config.Paths.Profiles = v
	}

	if v := os.Getenv("TWINSIM_OUTPUT_DIR"); v != "" {
		config.Paths.OutputDir = v
	}

	if v := os.Getenv("TWINSIM_DATABASE"); v != "" {
		config.Paths.Database = v
	}

	if v := os.Getenv("TWINSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
