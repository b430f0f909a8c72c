package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hermz580/convoscope/internal/adapters/otel"
	"github.com/hermz580/convoscope/internal/domain"
	"github.com/hermz580/convoscope/internal/history"
	"github.com/hermz580/convoscope/internal/quality"
	"github.com/hermz580/convoscope/internal/temporal"
	"github.com/hermz580/convoscope/internal/util"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <export.json>",
	Short: "Classify an export and print the analysis summary",
	Long: `Classify every message of a transcript export and print corpus
statistics, quality aggregates and temporal trends.

Examples:
  convoscope analyze export.json
  convoscope analyze export.json --no-record`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeNoRecord bool

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeNoRecord, "no-record", false, "Skip recording the run to history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	messages, err := analyzeExport(args[0], cfg)
	if err != nil {
		return err
	}

	stats := domain.ComputeCorpusStats(messages)
	qualities := quality.Default().AnalyzeAll(messages)
	summary := temporal.New(messages).Summary(cfg.MinStreakDays)

	printAnalysis(stats, qualities, summary)

	if cfg.HistoryEnabled() && !analyzeNoRecord {
		if err := recordRun(ctx, cfg.DatabaseURL, cfg.AuthToken, args[0], stats, summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	exporter := newMetricsExporter(ctx, cfg)
	defer func() { _ = exporter.Close(ctx) }()
	return exporter.ExportRunMetrics(ctx, runMetrics(args[0], stats, summary))
}

func printAnalysis(stats domain.CorpusStats, qualities []quality.ConversationQuality, summary domain.TemporalSummary) {
	fmt.Println()
	fmt.Printf("  convoscope Analysis\n")
	fmt.Printf("  ===================\n")
	fmt.Println()

	fmt.Printf("  Corpus\n")
	fmt.Printf("  ------\n")
	fmt.Printf("  Conversations:     %d\n", stats.TotalConversations)
	fmt.Printf("  Messages:          %s\n", util.FormatNumber(int64(stats.TotalMessages)))
	fmt.Printf("  User messages:     %s\n", util.FormatNumber(int64(stats.UserMessages)))
	fmt.Printf("  Assistant msgs:    %s\n", util.FormatNumber(int64(stats.AssistantMessages)))
	fmt.Printf("  Avg length:        %.1f chars\n", stats.AvgMessageLength)
	fmt.Printf("  Avg words:         %.1f\n", stats.AvgWordsPerMessage)
	fmt.Println()

	fmt.Printf("  Model Performance\n")
	fmt.Printf("  -----------------\n")
	fmt.Printf("  With failures:     %d\n", stats.MessagesWithFailures)
	fmt.Printf("  Failure rate:      %.1f%%\n", stats.FailureRatePercent)
	fmt.Println()

	if len(qualities) > 0 {
		completed := 0
		for _, q := range qualities {
			if q.Task.Status == quality.StatusCompleted {
				completed++
			}
		}
		fmt.Printf("  Quality\n")
		fmt.Printf("  -------\n")
		fmt.Printf("  Tasks completed:   %d/%d\n", completed, len(qualities))
		fmt.Println()
	}

	if !summary.DateRange.Start.IsZero() {
		fmt.Printf("  Timeline\n")
		fmt.Printf("  --------\n")
		fmt.Printf("  From:              %s\n", summary.DateRange.Start.Format("2006-01-02"))
		fmt.Printf("  To:                %s\n", summary.DateRange.End.Format("2006-01-02"))
		fmt.Printf("  Streaks:           %d\n", len(summary.Streaks))
		fmt.Printf("  Pattern changes:   %d\n", len(summary.PatternChanges))
		fmt.Println()
	}
}

func recordRun(ctx context.Context, databaseURL, authToken, source string, stats domain.CorpusStats, summary domain.TemporalSummary) error {
	store, err := history.NewStore(databaseURL, authToken)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	run := history.Run{
		ID:                 uuid.New().String(),
		CreatedAt:          time.Now().UTC(),
		Source:             source,
		Conversations:      stats.TotalConversations,
		Messages:           stats.TotalMessages,
		UserMessages:       stats.UserMessages,
		AssistantMessages:  stats.AssistantMessages,
		FailureRatePercent: stats.FailureRatePercent,
	}
	if !summary.DateRange.Start.IsZero() {
		run.StartDate = summary.DateRange.Start.Format("2006-01-02")
		run.EndDate = summary.DateRange.End.Format("2006-01-02")
	}
	return store.RecordRun(ctx, run)
}

func runMetrics(source string, stats domain.CorpusStats, summary domain.TemporalSummary) otel.RunMetrics {
	var avgEngagement float64
	if len(summary.EngagementTrend) > 0 {
		for _, d := range summary.EngagementTrend {
			avgEngagement += d.Score
		}
		avgEngagement /= float64(len(summary.EngagementTrend))
	}
	return otel.RunMetrics{
		Source:             source,
		Conversations:      int64(stats.TotalConversations),
		Messages:           int64(stats.TotalMessages),
		FailureRatePercent: stats.FailureRatePercent,
		AvgEngagement:      avgEngagement,
	}
}
