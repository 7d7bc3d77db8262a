package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theharshitsuri/digital-twin-sim/internal/config"
	"github.com/theharshitsuri/digital-twin-sim/internal/store"
)

func newReportCmd() *cobra.Command {
	var (
		runID string
		top   int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report on persisted simulation runs",
		Long: `Report reads the SQLite results database. Without --run it lists all
persisted runs, newest first. With --run it prints that run's summary,
its semester trajectory, and the most frequently blocked courses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.Paths.Database == "" {
				return fmt.Errorf("no results database configured (set paths.database or TWINSIM_DATABASE)")
			}

			s, err := store.Open(cfg.Paths.Database)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := context.Background()
			if runID == "" {
				return listRuns(ctx, s, jsonOut)
			}
			return showRun(ctx, s, runID, top, jsonOut)
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run ID to report on (default: list all runs)")
	cmd.Flags().IntVar(&top, "top", 5, "Number of top blocked courses to show")

	return cmd
}

func listRuns(ctx context.Context, s *store.ResultsStore, jsonOut bool) error {
	runs, err := s.ListRuns(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"runs":  runs,
			"count": len(runs),
		})
	}

	if len(runs) == 0 {
		fmt.Println("No persisted runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  seed=%d  students=%d  graduated=%d  dropped=%d\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Seed, r.Students, r.Graduated, r.Dropped)
	}
	return nil
}

func showRun(ctx context.Context, s *store.ResultsStore, runID string, top int, jsonOut bool) error {
	rec, err := s.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	history, err := s.SemesterStats(ctx, runID)
	if err != nil {
		return err
	}
	blocked, err := s.TopBlockedCourses(ctx, runID, top)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"run":         rec,
			"history":     history,
			"top_blocked": blocked,
		})
	}

	fmt.Printf("Run %s (%s)\n", rec.ID, rec.CreatedAt.Format(time.RFC3339))
	fmt.Printf("  Seed: %d  Required credits: %d  Max semesters: %d\n",
		rec.Seed, rec.RequiredCredits, rec.MaxSemesters)
	fmt.Printf("  Students: %d  Graduated: %d  Dropped: %d  Enrolled: %d  Avg GPA: %.2f\n",
		rec.Students, rec.Graduated, rec.Dropped, rec.Enrolled, rec.AvgGPA)

	fmt.Println("  Semester trajectory:")
	for _, st := range history {
		fmt.Printf("    %2d %-6s graduated=%-4d dropped=%-4d enrolled=%-4d gpa=%.2f blocked=%d\n",
			st.Semester, st.Term, st.Graduated, st.Dropped, st.Enrolled, st.AvgGPA, st.Blocked)
	}

	if len(blocked) > 0 {
		fmt.Println("  Top blocked courses:")
		for _, b := range blocked {
			fmt.Printf("    %s (%d blockages)\n", b.Course, b.Count)
		}
	}
	return nil
}
