package charts

import (
	"github.com/wcharczuk/go-chart/v2"
)

func buildHistogram(spec *Spec, width, height int) (pngChart, error) {
	bins, err := BuildBins(spec.Data, spec.BinNumber)
	if err != nil {
		return nil, err
	}

	color := colorAt(0)
	bars := make([]chart.Value, 0, len(bins))
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		bars = append(bars, chart.Value{
			Label: FormatNumber(b.Low) + "-" + FormatNumber(b.High),
			Value: float64(b.Count),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color.WithAlpha(255),
				StrokeWidth: 1,
			},
		})
	}

	yName := spec.AxisYTitle
	if yName == "" {
		yName = "count"
	}

	return chart.BarChart{
		Title:      spec.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: background(spec.Title),
		BarWidth:   barWidth(width, len(bars)),
		BarSpacing: 1,
		XAxis:      axisStyle(),
		YAxis: chart.YAxis{
			Name:      yName,
			NameStyle: axisNameStyle(),
			Style:     axisStyle(),
			Range:     valueRange(0, float64(maxCount), true),
		},
		Bars: bars,
	}, nil
}
