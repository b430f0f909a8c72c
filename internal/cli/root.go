package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "convoscope",
	Short: "Classification and analysis for exported chat transcripts",
	Long: `convoscope classifies exported chat transcripts message by message
(topic, sentiment, assistant failures, PII redaction) and aggregates the
results into conversation quality metrics and corpus-wide temporal trends.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
