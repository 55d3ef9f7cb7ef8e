package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	MinDimension = 50
	MaxDimension = 4096
)

var (
	// ErrUnsupportedType is returned for chart types the renderer cannot draw
	ErrUnsupportedType = errors.New("unsupported chart type")
	// ErrMissingData is returned when the options carry no data points
	ErrMissingData = errors.New("chart data is required")
)

// Spec is the part of the chart options the renderers understand.
// Unknown keys are ignored.
type Spec struct {
	Type       string          `json:"type"`
	Data       json.RawMessage `json:"data"`
	Title      string          `json:"title"`
	AxisXTitle string          `json:"axisXTitle"`
	AxisYTitle string          `json:"axisYTitle"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	BinNumber  int             `json:"binNumber"`
	Stack      bool            `json:"stack"`
}

// ParseSpec decodes the chart spec out of validated options
func ParseSpec(opts Options) (*Spec, error) {
	if len(opts) == 0 {
		return nil, ErrMissingOptions
	}
	if opts[0] != '{' {
		return nil, errors.New("chart options must be a JSON object")
	}

	var spec Spec
	if err := json.Unmarshal(opts, &spec); err != nil {
		return nil, fmt.Errorf("invalid chart options: %w", err)
	}

	spec.Type = strings.ToLower(strings.TrimSpace(spec.Type))
	if spec.Type == "" {
		return nil, errors.New("chart type is required")
	}
	if isNullOrEmpty(spec.Data) {
		return nil, ErrMissingData
	}
	return &spec, nil
}

// Size returns the requested canvas size, falling back to the given
// defaults and clamped to [MinDimension, MaxDimension].
func (s *Spec) Size(defaultWidth, defaultHeight int) (int, int) {
	w, h := defaultWidth, defaultHeight
	if s.Width > 0 {
		w = int(s.Width)
	}
	if s.Height > 0 {
		h = int(s.Height)
	}
	return clamp(w), clamp(h)
}

func clamp(v int) int {
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

func isNullOrEmpty(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == "[]"
}
