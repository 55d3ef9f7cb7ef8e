package pages

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"visrender/internal/charts"
)

// RuntimeScript is the file name the gpt-vis page loads its runtime from,
// relative to the page itself.
const RuntimeScript = "gpt-vis.min.js"

const defaultTitle = "gpt-vis chart"

//go:embed templates/gptvis.html
var templateFS embed.FS

var optionsEscaper = strings.NewReplacer("<", `\u003c`, ">", `\u003e`)

// EscapeOptions returns the options JSON with every < and > replaced by its
// \u escape. No other character is touched.
func EscapeOptions(opts charts.Options) string {
	return optionsEscaper.Replace(opts.String())
}

type gptvisData struct {
	Title   string
	Options template.JS
}

// GPTVisBuilder renders pages that hand the options to the gpt-vis browser runtime
type GPTVisBuilder struct {
	tmpl *template.Template
}

// NewGPTVisBuilder parses the embedded page template
func NewGPTVisBuilder() (*GPTVisBuilder, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/gptvis.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpt-vis template: %w", err)
	}
	return &GPTVisBuilder{tmpl: tmpl}, nil
}

// BuildHTML interpolates the escaped options into the page
func (b *GPTVisBuilder) BuildHTML(ctx context.Context, opts charts.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(opts) == 0 {
		return "", charts.ErrMissingOptions
	}

	data := gptvisData{
		Title:   pageTitle(opts),
		Options: template.JS(EscapeOptions(opts)),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute gpt-vis template: %w", err)
	}
	return buf.String(), nil
}

// pageTitle uses the chart title when the options carry one
func pageTitle(opts charts.Options) string {
	spec, err := charts.ParseSpec(opts)
	if err != nil || strings.TrimSpace(spec.Title) == "" {
		return defaultTitle
	}
	return spec.Title
}
