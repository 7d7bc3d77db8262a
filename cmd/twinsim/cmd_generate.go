package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/config"
	"github.com/theharshitsuri/digital-twin-sim/internal/synth"
)

func newGenerateCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic course catalog and student population",
		Long: `Generate writes a synthetic course catalog and a matching student
population to the paths configured under paths.catalog and
paths.profiles. Both files are plain JSON and can be hand-edited or
replaced with institutional data before running a simulation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Catalog.Seed = seed
				cfg.Synth.Seed = seed
			}

			courses, err := synth.GenerateCatalog(cfg.Catalog)
			if err != nil {
				return fmt.Errorf("generating catalog: %w", err)
			}
			cat := catalog.New(courses)

			profiles, err := synth.GenerateStudents(cat, cfg.Synth)
			if err != nil {
				return fmt.Errorf("generating students: %w", err)
			}

			if err := writeJSONFile(cfg.Paths.Catalog, courses); err != nil {
				return err
			}
			if err := writeJSONFile(cfg.Paths.Profiles, profiles); err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"catalog_path":  cfg.Paths.Catalog,
					"profiles_path": cfg.Paths.Profiles,
					"courses":       len(courses),
					"students":      len(profiles),
					"seed":          cfg.Synth.Seed,
				})
			}

			fmt.Printf("Wrote %d courses to %s\n", len(courses), cfg.Paths.Catalog)
			fmt.Printf("Wrote %d student profiles to %s\n", len(profiles), cfg.Paths.Profiles)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for catalog and population generation")

	return cmd
}

// writeJSONFile writes v as indented JSON, creating parent directories.
func writeJSONFile(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
