package cli

import (
	"fmt"

	"github.com/hermz580/convoscope/internal/classify"
	"github.com/hermz580/convoscope/internal/domain"
	"github.com/hermz580/convoscope/internal/infrastructure/config"
	"github.com/hermz580/convoscope/internal/loader"
	"github.com/hermz580/convoscope/internal/parse"
	"github.com/hermz580/convoscope/internal/privacy"
)

// analyzeExport runs the full classification pipeline over an export file.
func analyzeExport(path string, cfg *config.Config) ([]domain.ClassifiedMessage, error) {
	conversations, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	redactor := privacy.Default()
	if cfg.DisablePrivacy {
		redactor = privacy.Disabled()
	}

	parser := parse.New(redactor, classify.Default(), cfg.Workers)
	return parser.Parse(conversations), nil
}

// loadConfig wraps config loading with a uniform error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
