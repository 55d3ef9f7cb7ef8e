package charts

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var palette = []drawing.Color{
	drawing.ColorFromHex("1783FF"),
	drawing.ColorFromHex("00C9C9"),
	drawing.ColorFromHex("F0884D"),
	drawing.ColorFromHex("D580FF"),
	drawing.ColorFromHex("7863FF"),
	drawing.ColorFromHex("60C42D"),
	drawing.ColorFromHex("BD8F24"),
	drawing.ColorFromHex("FF80CA"),
	drawing.ColorFromHex("2491B3"),
	drawing.ColorFromHex("17C76F"),
}

var (
	textColor = drawing.Color{R: 52, G: 58, B: 64, A: 255}
	axisColor = drawing.Color{R: 108, G: 117, B: 125, A: 255}
)

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

func titleStyle() chart.Style {
	return chart.Style{
		FontSize:  14,
		FontColor: textColor,
	}
}

func background(title string) chart.Style {
	top := 20
	if title != "" {
		top = 50
	}
	return chart.Style{
		Padding: chart.Box{
			Top:    top,
			Left:   20,
			Right:  20,
			Bottom: 20,
		},
		FillColor: drawing.ColorWhite,
	}
}

func axisStyle() chart.Style {
	return chart.Style{
		FontSize:  10,
		FontColor: axisColor,
	}
}

func axisNameStyle() chart.Style {
	return chart.Style{
		FontSize:  11,
		FontColor: textColor,
	}
}

// valueRange returns a non degenerate y range around [min, max]
func valueRange(min, max float64, includeZero bool) *chart.ContinuousRange {
	if includeZero {
		if min > 0 {
			min = 0
		}
		if max < 0 {
			max = 0
		}
	}
	if min == max {
		if min == 0 {
			max = 1
		} else {
			pad := abs(min) * 0.1
			min, max = min-pad, max+pad
		}
	}
	return &chart.ContinuousRange{Min: min, Max: max}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
