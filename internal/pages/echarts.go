package pages

import (
	"bytes"
	"context"
	"fmt"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"visrender/internal/charts"
)

const (
	pageWidth  = "800px"
	pageHeight = "500px"
)

type echartsPage interface {
	Render(w io.Writer) error
}

// EChartsBuilder renders self-contained go-echarts pages from chart options
type EChartsBuilder struct{}

// NewEChartsBuilder creates an ECharts page builder
func NewEChartsBuilder() *EChartsBuilder {
	return &EChartsBuilder{}
}

// BuildHTML draws the chart described by opts as an ECharts page
func (b *EChartsBuilder) BuildHTML(ctx context.Context, opts charts.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	spec, err := charts.ParseSpec(opts)
	if err != nil {
		return "", err
	}

	var page echartsPage
	switch spec.Type {
	case "line", "area":
		page, err = lineChart(spec)
	case "column", "bar":
		page, err = barChart(spec)
	case "pie":
		page, err = pieChart(spec)
	case "scatter":
		page, err = scatterChart(spec)
	case "histogram":
		page, err = histogramChart(spec)
	default:
		return "", fmt.Errorf("%w: %s", charts.ErrUnsupportedType, spec.Type)
	}
	if err != nil {
		return "", fmt.Errorf("invalid %s chart: %w", spec.Type, err)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return "", fmt.Errorf("go-echarts render failed: %w", err)
	}
	return buf.String(), nil
}

func globalOptions(spec *charts.Spec) []echarts.GlobalOpts {
	title := spec.Title
	if title == "" {
		title = defaultTitle
	}
	return []echarts.GlobalOpts{
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     pageWidth,
			Height:    pageHeight,
			Theme:     types.ThemeWesteros,
		}),
		echarts.WithTitleOpts(opts.Title{
			Title: spec.Title,
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show: true,
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show:  true,
			Right: "10",
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: spec.AxisXTitle,
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: spec.AxisYTitle,
		}),
	}
}

func seriesLabel(group string, spec *charts.Spec) string {
	if group != "" {
		return group
	}
	if spec.AxisYTitle != "" {
		return spec.AxisYTitle
	}
	return "value"
}

func lineChart(spec *charts.Spec) (echartsPage, error) {
	ds, err := charts.BuildCategoryDataset(spec.Data, charts.TimeKey)
	if err != nil {
		return nil, err
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(globalOptions(spec)...)
	line.SetXAxis(ds.Categories)
	for _, group := range ds.Groups {
		data := make([]opts.LineData, 0, len(ds.Categories))
		for _, category := range ds.Categories {
			v, ok := ds.Value(group, category)
			if !ok {
				data = append(data, opts.LineData{Value: "-"})
				continue
			}
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(seriesLabel(group, spec), data)
	}
	if spec.Type == "area" {
		line.SetSeriesOptions(echarts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.3}))
	}
	return line, nil
}

func barChart(spec *charts.Spec) (echartsPage, error) {
	ds, err := charts.BuildCategoryDataset(spec.Data, charts.CategoryKey)
	if err != nil {
		return nil, err
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(globalOptions(spec)...)
	bar.SetXAxis(ds.Categories)
	for _, group := range ds.Groups {
		data := make([]opts.BarData, 0, len(ds.Categories))
		for _, category := range ds.Categories {
			v, ok := ds.Value(group, category)
			if !ok {
				data = append(data, opts.BarData{Value: "-"})
				continue
			}
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(seriesLabel(group, spec), data)
	}
	if spec.Stack {
		bar.SetSeriesOptions(echarts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}
	if spec.Type == "bar" {
		bar.XYReversal()
	}
	return bar, nil
}

func pieChart(spec *charts.Spec) (echartsPage, error) {
	slices, err := charts.BuildSlices(spec.Data)
	if err != nil {
		return nil, err
	}

	data := make([]opts.PieData, 0, len(slices))
	for _, s := range slices {
		data = append(data, opts.PieData{Name: s.Label, Value: s.Value})
	}

	pie := echarts.NewPie()
	pie.SetGlobalOptions(globalOptions(spec)...)
	pie.AddSeries(seriesLabel("", spec), data)
	return pie, nil
}

func scatterChart(spec *charts.Spec) (echartsPage, error) {
	xs, ys, err := charts.BuildPoints(spec.Data)
	if err != nil {
		return nil, err
	}

	data := make([]opts.ScatterData, 0, len(xs))
	for i := range xs {
		data = append(data, opts.ScatterData{Value: []interface{}{xs[i], ys[i]}})
	}

	scatter := echarts.NewScatter()
	scatter.SetGlobalOptions(globalOptions(spec)...)
	scatter.SetGlobalOptions(echarts.WithXAxisOpts(opts.XAxis{
		Name: spec.AxisXTitle,
		Type: "value",
	}))
	scatter.AddSeries(seriesLabel("", spec), data)
	return scatter, nil
}

func histogramChart(spec *charts.Spec) (echartsPage, error) {
	bins, err := charts.BuildBins(spec.Data, spec.BinNumber)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(bins))
	data := make([]opts.BarData, 0, len(bins))
	for _, b := range bins {
		labels = append(labels, charts.FormatNumber(b.Low)+"-"+charts.FormatNumber(b.High))
		data = append(data, opts.BarData{Value: b.Count})
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(globalOptions(spec)...)
	bar.SetXAxis(labels)
	bar.AddSeries("count", data)
	bar.SetSeriesOptions(echarts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "1%"}))
	return bar, nil
}
