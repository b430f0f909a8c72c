package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hermz580/convoscope/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <export.json>",
	Short: "Export classified messages to CSV, JSON or XLSX",
	Long: `Classify an export and write the results in a tabular format.

Examples:
  convoscope export chats.json --format csv --output messages.csv
  convoscope export chats.json --format json
  convoscope export chats.json --format xlsx --output analysis.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// Flags
var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json, xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout; required for xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	messages, err := analyzeExport(args[0], cfg)
	if err != nil {
		return err
	}

	if exportFormat == "xlsx" {
		if exportOutput == "" {
			return fmt.Errorf("xlsx export requires --output")
		}
		if err := export.WriteWorkbook(exportOutput, messages); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d messages to %s\n", len(messages), exportOutput)
		return nil
	}

	output := os.Stdout
	if exportOutput != "" {
		output, err = os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = output.Close() }()
	}

	switch exportFormat {
	case "csv":
		err = export.WriteCSV(output, messages)
	case "json":
		err = export.WriteJSON(output, messages)
	default:
		return fmt.Errorf("unsupported format: %s (use csv, json or xlsx)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "Exported %d messages to %s\n", len(messages), exportOutput)
	}
	return nil
}
