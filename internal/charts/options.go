package charts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingOptions is returned when a request carries no chart options at all
var ErrMissingOptions = errors.New("missing required parameters: type or data")

// Options is the chart description exactly as the caller sent it, compacted.
// Key order is preserved and nothing is HTML-escaped.
type Options json.RawMessage

// ParseOptions validates a request body and returns it as Options.
// An empty body or a literal null yields ErrMissingOptions. Anything that is
// not a JSON object or array at the top level is rejected.
func ParseOptions(body []byte) (Options, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrMissingOptions
	}

	if !json.Valid(trimmed) {
		var probe interface{}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		return nil, errors.New("invalid JSON body")
	}

	switch trimmed[0] {
	case '{', '[':
	default:
		return nil, errors.New("invalid JSON body: top level value must be an object or array")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return Options(buf.Bytes()), nil
}

// Bytes returns the compact JSON text
func (o Options) Bytes() []byte {
	return []byte(o)
}

func (o Options) String() string {
	return string(o)
}
