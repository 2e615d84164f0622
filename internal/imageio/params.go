package imageio

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Params are the opaque keyword options passed through to the codec or the
// figure export. Values usually come from JSON, so numbers arrive as
// float64.
type Params map[string]interface{}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int returns the integer value of key and whether it was set.
func (p Params) Int(key string) (int, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		return int(n), true, nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil, wrapParam(key, err)
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil, wrapParam(key, err)
	}
	return 0, false, fmt.Errorf("parameter %q: expected a number, got %T", key, v)
}

// Bool returns the boolean value of key and whether it was set.
func (p Params) Bool(key string) (bool, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return false, false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, true, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil, wrapParam(key, err)
	case float64:
		return b != 0, true, nil
	case int:
		return b != 0, true, nil
	}
	return false, false, fmt.Errorf("parameter %q: expected a boolean, got %T", key, v)
}

func wrapParam(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("parameter %q: %w", key, err)
}

// OutputSize is the requested pixel size of a rendered export: empty for the
// native size, one value for both axes, or (width, height).
type OutputSize []float64

// UnmarshalJSON accepts either a single number or an array of numbers.
func (s *OutputSize) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = OutputSize{n}
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOutputSize, b)
	}
	*s = arr
	return nil
}

// IsSet reports whether s requests a size. A single zero is treated like
// an empty size, so it does not force a rendered write.
func (s OutputSize) IsSet() bool {
	return len(s) > 1 || (len(s) == 1 && s[0] != 0)
}

// Resolve returns the pixel size to render, falling back to native when s
// is unset.
func (s OutputSize) Resolve(native [2]int) ([2]float64, error) {
	if !s.IsSet() {
		return [2]float64{float64(native[0]), float64(native[1])}, nil
	}
	switch len(s) {
	case 1:
		if s[0] <= 0 {
			break
		}
		return [2]float64{s[0], s[0]}, nil
	case 2:
		if s[0] <= 0 || s[1] <= 0 {
			break
		}
		return [2]float64{s[0], s[1]}, nil
	}
	return [2]float64{}, fmt.Errorf("%w: %v", ErrInvalidOutputSize, []float64(s))
}
