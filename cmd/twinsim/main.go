package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	// Local .env files may carry TWINSIM_* overrides; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "twinsim",
		Short: "Digital twin - agent-based student progression simulator",
		Long: `twinsim simulates student cohorts progressing through a degree program.

It generates synthetic populations, advances them semester by semester
through grades, prerequisites, and attrition rules, and reports on
graduation timing and curriculum bottlenecks.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for pipeline consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (YAML)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newRunCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("twinsim version %s\n", version)
			}
		},
	}
}
