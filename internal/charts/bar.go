package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// buildColumn draws column and bar charts. Grouped data is drawn as adjacent
// bars coloured per group, or as share-of-total stacks when stack is set.
// go-chart has no horizontal bars, so "bar" is drawn vertically too.
func buildColumn(spec *Spec, width, height int) (pngChart, error) {
	ds, err := BuildCategoryDataset(spec.Data, CategoryKey)
	if err != nil {
		return nil, err
	}
	if spec.Stack && ds.Grouped() {
		return buildStacked(spec, ds, width, height), nil
	}

	bars := make([]chart.Value, 0, len(ds.Categories)*len(ds.Groups))
	for ci, category := range ds.Categories {
		for gi, group := range ds.Groups {
			v, ok := ds.Value(group, category)
			if !ok {
				continue
			}
			colorIndex := ci
			text := category
			if ds.Grouped() {
				colorIndex = gi
				text = category + " (" + group + ")"
			}
			color := colorAt(colorIndex)
			bars = append(bars, chart.Value{
				Label: text,
				Value: v,
				Style: chart.Style{
					FillColor:   color,
					StrokeColor: color,
					StrokeWidth: 1,
				},
			})
		}
	}

	min, max := ds.Bounds()
	return chart.BarChart{
		Title:      spec.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: background(spec.Title),
		BarWidth:   barWidth(width, len(bars)),
		XAxis:      axisStyle(),
		YAxis: chart.YAxis{
			Name:      spec.AxisYTitle,
			NameStyle: axisNameStyle(),
			Style:     axisStyle(),
			Range:     valueRange(min, max, true),
		},
		Bars: bars,
	}, nil
}

func buildStacked(spec *Spec, ds *CategoryDataset, width, height int) pngChart {
	bars := make([]chart.StackedBar, 0, len(ds.Categories))
	for _, category := range ds.Categories {
		values := make([]chart.Value, 0, len(ds.Groups))
		for gi, group := range ds.Groups {
			v, ok := ds.Value(group, category)
			if !ok || v <= 0 {
				continue
			}
			color := colorAt(gi)
			values = append(values, chart.Value{
				Label: group,
				Value: v,
				Style: chart.Style{
					FillColor:   color,
					StrokeColor: color,
					StrokeWidth: 1,
				},
			})
		}
		if len(values) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name:   category,
			Width:  barWidth(width, len(ds.Categories)),
			Values: values,
		})
	}

	return chart.StackedBarChart{
		Title:      spec.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: background(spec.Title),
		XAxis:      axisStyle(),
		YAxis:      axisStyle(),
		Bars:       bars,
	}
}

// barWidth spreads bars over roughly two thirds of the canvas
func barWidth(width, count int) int {
	if count <= 0 {
		return 0
	}
	w := int(math.Floor(float64(width) * 2 / 3 / float64(count)))
	if w < 4 {
		return 4
	}
	if w > 80 {
		return 80
	}
	return w
}
