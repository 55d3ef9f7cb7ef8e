package charts

import (
	"github.com/wcharczuk/go-chart/v2"
)

func buildPie(spec *Spec, width, height int) (pngChart, error) {
	slices, err := BuildSlices(spec.Data)
	if err != nil {
		return nil, err
	}

	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		color := colorAt(i)
		values = append(values, chart.Value{
			Label: s.Label,
			Value: s.Value,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
				FontColor:   textColor,
			},
		})
	}

	return chart.PieChart{
		Title:      spec.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: background(spec.Title),
		Values:     values,
	}, nil
}
