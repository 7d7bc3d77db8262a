package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/config"
	"github.com/theharshitsuri/digital-twin-sim/internal/export"
	"github.com/theharshitsuri/digital-twin-sim/internal/logging"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
	"github.com/theharshitsuri/digital-twin-sim/internal/outcomes"
	"github.com/theharshitsuri/digital-twin-sim/internal/store"
)

func newRunCmd() *cobra.Command {
	var (
		seed         int64
		maxSemesters int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation from a catalog and population on disk",
		Long: `Run loads the course catalog and student profiles from the configured
paths, advances the population semester by semester until everyone has
graduated or dropped out (or the semester ceiling is hit), and writes
semester statistics, per-student outcomes, and blocked-course events to
the output directory. When paths.database is set, the run is also
persisted to SQLite for later reporting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Simulation.Seed = seed
			}
			if cmd.Flags().Changed("max-semesters") {
				cfg.Simulation.MaxSemesters = maxSemesters
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

			cat, err := catalog.LoadFile(cfg.Paths.Catalog)
			if err != nil {
				return err
			}
			profiles, err := agent.LoadProfilesFile(cfg.Paths.Profiles)
			if err != nil {
				return err
			}
			logger.Info("loaded inputs",
				"courses", cat.Len(),
				"students", len(profiles))

			events := logging.NewEventLogger(cfg.Paths.OutputDir, cfg.Logging.Level)
			defer events.Close()

			u, err := model.New(profiles, cat, model.Options{
				RequiredCredits: cfg.Simulation.RequiredCredits,
				Seed:            cfg.Simulation.Seed,
				Agent:           cfg.Agent,
				Events:          events,
			})
			if err != nil {
				return err
			}

			history := u.Run(cfg.Simulation.MaxSemesters)
			report := outcomes.Summarize(u)
			logger.Info("simulation finished",
				"semesters", u.SemesterCount,
				"graduated", u.CountGraduated(),
				"dropped_out", u.CountDropped(),
				"enrolled", u.CountEnrolled())

			if err := writeOutputs(cfg.Paths.OutputDir, history, report); err != nil {
				return err
			}

			var runID string
			if cfg.Paths.Database != "" {
				runID, err = persistRun(cfg, u, history, report)
				if err != nil {
					return err
				}
				logger.Info("run persisted", "database", cfg.Paths.Database, "run_id", runID)
			}

			if jsonOut {
				out := map[string]interface{}{
					"semesters_run": u.SemesterCount,
					"students":      len(u.Students),
					"graduated":     u.CountGraduated(),
					"dropped_out":   u.CountDropped(),
					"enrolled":      u.CountEnrolled(),
					"avg_gpa":       u.AvgGPA(),
					"blocking":      report.Blocking,
					"output_dir":    cfg.Paths.OutputDir,
				}
				if runID != "" {
					out["run_id"] = runID
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			fmt.Printf("Simulated %d students over %d semesters\n", len(u.Students), u.SemesterCount)
			fmt.Printf("  Graduated:      %d\n", u.CountGraduated())
			fmt.Printf("  Dropped out:    %d\n", u.CountDropped())
			fmt.Printf("  Still enrolled: %d\n", u.CountEnrolled())
			fmt.Printf("  Average GPA:    %.2f\n", u.AvgGPA())
			if top := report.TopBlocked(3); len(top) > 0 {
				fmt.Printf("  Top blocked courses:\n")
				for _, code := range top {
					fmt.Printf("    %s (%d blockages)\n", code, report.BlockedByCourse[code])
				}
			}
			fmt.Printf("Results written to %s\n", cfg.Paths.OutputDir)
			if runID != "" {
				fmt.Printf("Run persisted as %s\n", runID)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Simulation seed")
	cmd.Flags().IntVar(&maxSemesters, "max-semesters", model.DefaultMaxSemesters, "Semester ceiling")

	return cmd
}

// writeOutputs writes the CSV and Arrow result files to dir.
func writeOutputs(dir string, history []model.SemesterStats, report outcomes.Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := export.WriteSemesterStatsCSV(filepath.Join(dir, "semester_stats.csv"), history); err != nil {
		return err
	}
	if err := export.WriteStudentOutcomesCSV(filepath.Join(dir, "student_outcomes.csv"), report.Students); err != nil {
		return err
	}
	if err := export.WriteBlockedCoursesCSV(filepath.Join(dir, "blocked_courses.csv"), report.Blocked); err != nil {
		return err
	}
	return export.WriteStudentOutcomesArrow(filepath.Join(dir, "student_outcomes.arrow"), report.Students)
}

// persistRun saves the finished run to the configured SQLite database.
func persistRun(cfg *config.SimConfig, u *model.University, history []model.SemesterStats, report outcomes.Report) (string, error) {
	s, err := store.Open(cfg.Paths.Database)
	if err != nil {
		return "", err
	}
	defer s.Close()

	rec := store.RunRecord{
		Seed:            cfg.Simulation.Seed,
		RequiredCredits: u.RequiredCredits,
		MaxSemesters:    cfg.Simulation.MaxSemesters,
		SemestersRun:    u.SemesterCount,
		Students:        len(u.Students),
		Graduated:       u.CountGraduated(),
		Dropped:         u.CountDropped(),
		Enrolled:        u.CountEnrolled(),
		AvgGPA:          u.AvgGPA(),
	}
	return s.SaveRun(context.Background(), rec, history, report)
}
