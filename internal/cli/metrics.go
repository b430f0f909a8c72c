package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hermz580/convoscope/internal/adapters/otel"
	"github.com/hermz580/convoscope/internal/infrastructure/config"
)

// newMetricsExporter builds the configured exporter, degrading to no-op
// when metrics are disabled or the collector is unreachable.
func newMetricsExporter(ctx context.Context, cfg *config.Config) otel.MetricsExporter {
	if !cfg.OTELEnabled {
		return otel.NewNoOpExporter()
	}
	exporter, err := otel.NewExporter(ctx, otel.Config{
		Endpoint: cfg.OTELEndpoint,
		Enabled:  cfg.OTELEnabled,
		Insecure: cfg.OTELInsecure,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: metrics export disabled: %v\n", err)
		return otel.NewNoOpExporter()
	}
	return exporter
}
