package charts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Label keys of category data items
const (
	TimeKey     = "time"
	CategoryKey = "category"
)

// rawPoint covers every data item shape the supported chart types accept
type rawPoint struct {
	Time     json.RawMessage `json:"time"`
	Category json.RawMessage `json:"category"`
	Group    json.RawMessage `json:"group"`
	Value    *float64        `json:"value"`
	X        *float64        `json:"x"`
	Y        *float64        `json:"y"`
}

// CategoryDataset is a set of named series sharing one ordered category axis.
// Categories and groups keep the order they first appear in the data.
type CategoryDataset struct {
	Categories []string
	Groups     []string
	values     map[string]map[string]float64
}

// Value returns the value of group at category, if there is one
func (d *CategoryDataset) Value(group, category string) (float64, bool) {
	v, ok := d.values[group][category]
	return v, ok
}

func (d *CategoryDataset) Grouped() bool {
	return len(d.Groups) > 1 || (len(d.Groups) == 1 && d.Groups[0] != "")
}

// Bounds returns the smallest and largest value across all groups
func (d *CategoryDataset) Bounds() (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, byCategory := range d.values {
		for _, v := range byCategory {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	return min, max
}

func decodePoints(data json.RawMessage) ([]rawPoint, error) {
	var points []rawPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("data must be an array of objects: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrMissingData
	}
	return points, nil
}

// BuildCategoryDataset reads {<labelKey>, value, group?} items. Values with the
// same group and category are summed.
func BuildCategoryDataset(data json.RawMessage, labelKey string) (*CategoryDataset, error) {
	points, err := decodePoints(data)
	if err != nil {
		return nil, err
	}

	ds := &CategoryDataset{values: make(map[string]map[string]float64)}
	seenCategory := make(map[string]bool)
	for i, p := range points {
		rawLabel := p.Category
		if labelKey == TimeKey {
			rawLabel = p.Time
		}
		category := Label(rawLabel)
		if category == "" {
			return nil, fmt.Errorf("data[%d]: %s is required", i, labelKey)
		}
		if p.Value == nil {
			return nil, fmt.Errorf("data[%d]: value is required", i)
		}

		group := Label(p.Group)
		byCategory, ok := ds.values[group]
		if !ok {
			byCategory = make(map[string]float64)
			ds.values[group] = byCategory
			ds.Groups = append(ds.Groups, group)
		}
		if !seenCategory[category] {
			seenCategory[category] = true
			ds.Categories = append(ds.Categories, category)
		}
		byCategory[category] += *p.Value
	}
	return ds, nil
}

// Slice is one pie sector
type Slice struct {
	Label string
	Value float64
}

// BuildSlices reads {category, value} items into pie sectors. Values must be
// non-negative and add up to more than zero.
func BuildSlices(data json.RawMessage) ([]Slice, error) {
	ds, err := BuildCategoryDataset(data, CategoryKey)
	if err != nil {
		return nil, err
	}

	slices := make([]Slice, 0, len(ds.Categories))
	total := 0.0
	for _, category := range ds.Categories {
		sum := 0.0
		for _, group := range ds.Groups {
			v, _ := ds.Value(group, category)
			sum += v
		}
		if sum < 0 {
			return nil, fmt.Errorf("pie value for %q must not be negative", category)
		}
		total += sum
		slices = append(slices, Slice{Label: category, Value: sum})
	}
	if total <= 0 {
		return nil, fmt.Errorf("pie values must add up to more than zero")
	}
	return slices, nil
}

// BuildPoints reads {x, y} items
func BuildPoints(data json.RawMessage) (xs, ys []float64, err error) {
	points, err := decodePoints(data)
	if err != nil {
		return nil, nil, err
	}

	xs = make([]float64, 0, len(points))
	ys = make([]float64, 0, len(points))
	for i, p := range points {
		if p.X == nil || p.Y == nil {
			return nil, nil, fmt.Errorf("data[%d]: x and y are required", i)
		}
		xs = append(xs, *p.X)
		ys = append(ys, *p.Y)
	}
	return xs, ys, nil
}

// Bin is one histogram bucket covering [Low, High)
type Bin struct {
	Low, High float64
	Count     int
}

// MaxBins is the largest bin count a histogram accepts
const MaxBins = 100

// BuildBins groups raw numbers into equal width bins. With binCount <= 0 the
// number of bins follows Sturges' rule.
func BuildBins(data json.RawMessage, binCount int) ([]Bin, error) {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("histogram data must be an array of numbers: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrMissingData
	}
	if binCount <= 0 {
		binCount = int(math.Ceil(math.Log2(float64(len(values))))) + 1
	}
	if binCount > MaxBins {
		return nil, fmt.Errorf("binNumber %d exceeds the maximum of %d", binCount, MaxBins)
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min == max {
		return []Bin{{Low: min, High: min + 1, Count: len(values)}}, nil
	}

	width := (max - min) / float64(binCount)
	if math.IsInf(max-min, 0) || width <= 0 {
		return nil, fmt.Errorf("histogram range %g..%g is too wide to bin", min, max)
	}
	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i].Low = min + float64(i)*width
		bins[i].High = min + float64(i+1)*width
	}
	bins[binCount-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		switch {
		case idx < 0:
			idx = 0
		case idx >= binCount:
			idx = binCount - 1
		}
		bins[idx].Count++
	}
	return bins, nil
}

// Label turns a JSON scalar into axis text. Strings are used as is, other
// values keep their JSON spelling.
func Label(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}

// FormatNumber prints v with at most four significant digits
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
