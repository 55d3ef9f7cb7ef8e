package charts

import (
	"github.com/wcharczuk/go-chart/v2"
)

func buildLine(spec *Spec, width, height int) (pngChart, error) {
	return buildCategoryLines(spec, width, height, false)
}

func buildArea(spec *Spec, width, height int) (pngChart, error) {
	return buildCategoryLines(spec, width, height, true)
}

// buildCategoryLines plots one series per group over the time labels.
// Category i sits at x = i+1 with empty padding ticks on both ends.
func buildCategoryLines(spec *Spec, width, height int, filled bool) (pngChart, error) {
	ds, err := BuildCategoryDataset(spec.Data, TimeKey)
	if err != nil {
		return nil, err
	}

	ticks := make([]chart.Tick, 0, len(ds.Categories)+2)
	ticks = append(ticks, chart.Tick{Value: 0})
	for i, category := range ds.Categories {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: category})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(ds.Categories) + 1)})

	series := make([]chart.Series, 0, len(ds.Groups))
	for gi, group := range ds.Groups {
		xs := make([]float64, 0, len(ds.Categories))
		ys := make([]float64, 0, len(ds.Categories))
		for ci, category := range ds.Categories {
			if v, ok := ds.Value(group, category); ok {
				xs = append(xs, float64(ci+1))
				ys = append(ys, v)
			}
		}

		color := colorAt(gi)
		style := chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
			DotColor:    color,
			DotWidth:    3,
		}
		if filled {
			style.FillColor = color.WithAlpha(64)
		}

		name := group
		if name == "" {
			name = seriesName(spec)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			Style:   style,
			XValues: xs,
			YValues: ys,
		})
	}

	min, max := ds.Bounds()
	graph := chart.Chart{
		Title:      spec.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: background(spec.Title),
		XAxis: chart.XAxis{
			Name:      spec.AxisXTitle,
			NameStyle: axisNameStyle(),
			Style:     axisStyle(),
			Ticks:     ticks,
		},
		YAxis: chart.YAxis{
			Name:      spec.AxisYTitle,
			NameStyle: axisNameStyle(),
			Style:     axisStyle(),
			Range:     valueRange(min, max, filled),
		},
		Series: series,
	}
	if ds.Grouped() {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph, nil
}

func seriesName(spec *Spec) string {
	if spec.AxisYTitle != "" {
		return spec.AxisYTitle
	}
	return "value"
}
