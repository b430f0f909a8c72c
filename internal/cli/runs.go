package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hermz580/convoscope/internal/history"
	"github.com/hermz580/convoscope/internal/util"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	Long: `List past analysis runs stored in the history database.

Requires CONVOSCOPE_DATABASE_URL (and CONVOSCOPE_AUTH_TOKEN for Turso).`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var runsLimit int

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.HistoryEnabled() {
		return fmt.Errorf("history is not configured: set CONVOSCOPE_DATABASE_URL")
	}

	store, err := history.NewStore(cfg.DatabaseURL, cfg.AuthToken)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	runs, err := store.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	printRuns(runs)
	return nil
}

func printRuns(runs []history.Run) {
	fmt.Println()
	fmt.Printf("  Analysis Runs\n")
	fmt.Printf("  =============\n")
	fmt.Println()
	fmt.Printf("  %-20s %-24s %6s %9s %9s\n", "When", "Source", "Convs", "Messages", "Failures")
	for _, run := range runs {
		fmt.Printf("  %-20s %-24s %6d %9s %8.1f%%\n",
			run.CreatedAt.Format("2006-01-02 15:04"),
			util.Truncate(run.Source, 24),
			run.Conversations,
			util.FormatNumber(int64(run.Messages)),
			run.FailureRatePercent,
		)
	}
	fmt.Println()
}
