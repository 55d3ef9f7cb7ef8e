// Package pages builds self-contained HTML documents that render a chart in
// the browser.
package pages

import (
	"context"
	"fmt"

	"visrender/internal/charts"
	"visrender/internal/config"
)

// PageBuilder turns chart options into a complete HTML document
type PageBuilder interface {
	BuildHTML(ctx context.Context, opts charts.Options) (string, error)
}

// NewPageBuilder returns the builder for the configured HTML flavour
func NewPageBuilder(flavour string) (PageBuilder, error) {
	switch flavour {
	case config.HTMLRendererGPTVis, "":
		return NewGPTVisBuilder()
	case config.HTMLRendererECharts:
		return NewEChartsBuilder(), nil
	default:
		return nil, fmt.Errorf("unsupported HTML renderer: %s", flavour)
	}
}
