// Package charts turns chart options into images. The PNG renderer is built
// on go-chart and understands the common gpt-vis chart types.
package charts

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"visrender/internal/logger"
)

const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

// ImageRenderer renders chart options into a PNG image
type ImageRenderer interface {
	RenderPNG(ctx context.Context, opts Options) ([]byte, error)
}

// pngChart is satisfied by chart.Chart, chart.BarChart, chart.StackedBarChart and chart.PieChart
type pngChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

type buildFunc func(spec *Spec, width, height int) (pngChart, error)

// GoChartRenderer renders PNG charts with go-chart
type GoChartRenderer struct {
	width    int
	height   int
	builders map[string]buildFunc
	log      *logger.Logger
}

// NewGoChartRenderer creates a renderer using the given default canvas size.
// Non-positive sizes fall back to DefaultWidth and DefaultHeight.
func NewGoChartRenderer(width, height int) *GoChartRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &GoChartRenderer{
		width:  width,
		height: height,
		builders: map[string]buildFunc{
			"line":      buildLine,
			"area":      buildArea,
			"column":    buildColumn,
			"bar":       buildColumn,
			"pie":       buildPie,
			"scatter":   buildScatter,
			"histogram": buildHistogram,
		},
		log: logger.Component("charts"),
	}
}

// SupportedTypes lists the chart types RenderPNG accepts
func (r *GoChartRenderer) SupportedTypes() []string {
	return []string{"line", "area", "column", "bar", "pie", "scatter", "histogram"}
}

// RenderPNG draws the chart described by opts
func (r *GoChartRenderer) RenderPNG(ctx context.Context, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec, err := ParseSpec(opts)
	if err != nil {
		return nil, err
	}

	build, ok := r.builders[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, spec.Type)
	}

	width, height := spec.Size(r.width, r.height)
	graph, err := build(spec, width, height)
	if err != nil {
		return nil, fmt.Errorf("invalid %s chart: %w", spec.Type, err)
	}

	data, err := renderPNG(graph)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Chart rendered", logger.Fields{
		"type":   spec.Type,
		"width":  width,
		"height": height,
		"bytes":  len(data),
	})
	return data, nil
}

// renderPNG draws graph into memory, turning a panic inside go-chart into an error
func renderPNG(graph pngChart) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if errVal, ok := r.(error); ok {
				err = fmt.Errorf("go-chart render failed: %w", errVal)
			} else {
				err = fmt.Errorf("go-chart render failed: panic: %v", r)
			}
		}
	}()

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("go-chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
