package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visrender/internal/charts"
	"visrender/internal/config"
)

func TestEscapeOptions(t *testing.T) {
	tests := []struct {
		name     string
		opts     string
		expected string
	}{
		{"no special characters", `{"type":"pie"}`, `{"type":"pie"}`},
		{"angle brackets", `{"title":"<script>alert(1)</script>"}`, `{"title":"\u003cscript\u003ealert(1)\u003c/script\u003e"}`},
		{"ampersand and quotes kept", `{"title":"a & 'b'"}`, `{"title":"a & 'b'"}`},
		{"unicode kept", `{"title":"销售额"}`, `{"title":"销售额"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeOptions(charts.Options(tt.opts)))
		})
	}
}

func TestGPTVisBuilder(t *testing.T) {
	b, err := NewGPTVisBuilder()
	require.NoError(t, err)

	opts := charts.Options(`{"type":"column","title":"<b>Sales</b>","data":[{"category":"a","value":1}]}`)
	html, err := b.BuildHTML(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `var options = {"type":"column","title":"\u003cb\u003eSales\u003c/b\u003e","data":[{"category":"a","value":1}]};`)
	assert.NotContains(t, html, "<b>Sales</b>")
	assert.Contains(t, html, "<title>&lt;b&gt;Sales&lt;/b&gt;</title>")

	for _, want := range []string{
		`https://unpkg.com/mapbox-gl@2/dist/mapbox-gl.css`,
		`https://unpkg.com/maplibre-gl@2/dist/maplibre-gl.css`,
		`https://unpkg.com/react@18/umd/react.production.min.js`,
		`https://unpkg.com/react-dom@18/umd/react-dom.production.min.js`,
		`https://unpkg.com/lodash@4/lodash.min.js`,
		`https://unpkg.com/mapbox-gl@2/dist/mapbox-gl.js`,
		`https://unpkg.com/maplibre-gl@2/dist/maplibre-gl.js`,
		`<script src="./` + RuntimeScript + `"></script>`,
		`var gptVis = window.GPTVis || window.GptVis;`,
		`gptVis.render("#container", options);`,
		`style="width: 800px; height: 500px; margin: 24px auto;"`,
	} {
		assert.Contains(t, html, want)
	}
}

func TestGPTVisBuilderAcceptsAnyShape(t *testing.T) {
	b, err := NewGPTVisBuilder()
	require.NoError(t, err)

	html, err := b.BuildHTML(context.Background(), charts.Options(`[1,2,3]`))
	require.NoError(t, err)
	assert.Contains(t, html, "var options = [1,2,3];")
	assert.Contains(t, html, "<title>"+defaultTitle+"</title>")
}

func TestGPTVisBuilderErrors(t *testing.T) {
	b, err := NewGPTVisBuilder()
	require.NoError(t, err)

	_, err = b.BuildHTML(context.Background(), nil)
	assert.ErrorIs(t, err, charts.ErrMissingOptions)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.BuildHTML(ctx, charts.Options(`{}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEChartsBuilder(t *testing.T) {
	tests := []struct {
		name string
		opts string
	}{
		{"line", `{"type":"line","title":"Trend","data":[{"time":"2020","value":1},{"time":"2021","value":2}]}`},
		{"area grouped", `{"type":"area","data":[{"time":"a","value":1,"group":"x"},{"time":"b","value":2,"group":"y"}]}`},
		{"column stacked", `{"type":"column","stack":true,"data":[{"category":"a","value":1,"group":"x"},{"category":"a","value":2,"group":"y"}]}`},
		{"bar", `{"type":"bar","data":[{"category":"a","value":1}]}`},
		{"pie", `{"type":"pie","data":[{"category":"a","value":1},{"category":"b","value":2}]}`},
		{"scatter", `{"type":"scatter","data":[{"x":1,"y":2}]}`},
		{"histogram", `{"type":"histogram","data":[1,2,3,4,5]}`},
	}

	b := NewEChartsBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := b.BuildHTML(context.Background(), charts.Options(tt.opts))
			require.NoError(t, err)
			assert.Contains(t, html, "echarts.init")
			assert.Contains(t, html, "</html>")
		})
	}
}

func TestEChartsBuilderErrors(t *testing.T) {
	b := NewEChartsBuilder()

	_, err := b.BuildHTML(context.Background(), charts.Options(`{"type":"sankey","data":[1]}`))
	assert.ErrorIs(t, err, charts.ErrUnsupportedType)

	_, err = b.BuildHTML(context.Background(), charts.Options(`{"type":"line"}`))
	assert.ErrorIs(t, err, charts.ErrMissingData)

	_, err = b.BuildHTML(context.Background(), charts.Options(`[1]`))
	assert.Error(t, err)

	_, err = b.BuildHTML(context.Background(), charts.Options(`{"type":"histogram","data":[-1e308,1e308]}`))
	assert.ErrorContains(t, err, "too wide")

	_, err = b.BuildHTML(context.Background(), charts.Options(`{"type":"histogram","data":[1,2],"binNumber":1000000000}`))
	assert.ErrorContains(t, err, "exceeds the maximum")
}

func TestNewPageBuilder(t *testing.T) {
	b, err := NewPageBuilder(config.HTMLRendererGPTVis)
	require.NoError(t, err)
	assert.IsType(t, &GPTVisBuilder{}, b)

	b, err = NewPageBuilder("")
	require.NoError(t, err)
	assert.IsType(t, &GPTVisBuilder{}, b)

	b, err = NewPageBuilder(config.HTMLRendererECharts)
	require.NoError(t, err)
	assert.IsType(t, &EChartsBuilder{}, b)

	_, err = NewPageBuilder("d3")
	assert.Error(t, err)
}
