package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hermz580/convoscope/internal/domain"
	"github.com/hermz580/convoscope/internal/quality"
	"github.com/hermz580/convoscope/internal/report"
	"github.com/hermz580/convoscope/internal/temporal"
)

var reportCmd = &cobra.Command{
	Use:   "report <export.json>",
	Short: "Render an analysis report",
	Long: `Classify an export and render a markdown report.

Examples:
  convoscope report chats.json
  convoscope report chats.json --kind temporal
  convoscope report chats.json --kind quality --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

// Flags
var (
	reportKind  string
	reportPlain bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportKind, "kind", "k", "summary", "Report kind: summary, temporal, quality")
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "Print raw markdown without terminal styling")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	messages, err := analyzeExport(args[0], cfg)
	if err != nil {
		return err
	}

	var markdown string
	switch reportKind {
	case "summary":
		markdown = report.Summary(domain.ComputeCorpusStats(messages))
	case "temporal":
		markdown = report.Temporal(temporal.New(messages).Summary(cfg.MinStreakDays))
	case "quality":
		markdown = report.Quality(quality.Default().AnalyzeAll(messages))
	default:
		return fmt.Errorf("unsupported report kind: %s (use summary, temporal or quality)", reportKind)
	}

	fmt.Print(render(markdown))
	return nil
}

// render styles markdown for the terminal, falling back to the raw text
// when styling is off or stdout is not a terminal.
func render(markdown string) string {
	fd := int(os.Stdout.Fd())
	if reportPlain || !term.IsTerminal(fd) {
		return markdown
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
