package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

func buildScatter(spec *Spec, width, height int) (pngChart, error) {
	xs, ys, err := BuildPoints(spec.Data)
	if err != nil {
		return nil, err
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	color := colorAt(0)

	return chart.Chart{
		Title:      spec.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: background(spec.Title),
		XAxis: chart.XAxis{
			Name:      spec.AxisXTitle,
			NameStyle: axisNameStyle(),
			Style:     axisStyle(),
			Range:     valueRange(minX, maxX, false),
		},
		YAxis: chart.YAxis{
			Name:      spec.AxisYTitle,
			NameStyle: axisNameStyle(),
			Style:     axisStyle(),
			Range:     valueRange(minY, maxY, false),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: seriesName(spec),
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    color.WithAlpha(200),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}, nil
}

func bounds(values []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
