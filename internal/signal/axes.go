package signal

import "fmt"

// Undefined is the units value of an axis that has not been calibrated.
const Undefined = "<undefined>"

// Axis describes one dimension of a signal.
//
// A uniform axis maps index i to Offset + i*Scale. After ConvertToNonUniform
// the axis carries explicit coordinate values instead and Scale is no longer
// meaningful.
type Axis struct {
	Name     string  `json:"name"`
	Size     int     `json:"size"`
	Scale    float64 `json:"scale"`
	Offset   float64 `json:"offset"`
	Units    string  `json:"units"`
	Navigate bool    `json:"navigate"`

	values []float64
}

// NewAxis returns an uncalibrated uniform axis of the given size.
func NewAxis(name string, size int, navigate bool) *Axis {
	return &Axis{
		Name:     name,
		Size:     size,
		Scale:    1,
		Units:    Undefined,
		Navigate: navigate,
	}
}

// IsUniform reports whether the axis is evenly spaced.
func (a *Axis) IsUniform() bool { return a.values == nil }

// ConvertToNonUniform replaces the offset/scale description with explicit
// coordinate values.
func (a *Axis) ConvertToNonUniform() {
	if a.values != nil {
		return
	}
	a.values = a.Values()
}

// Values returns the coordinate of every index along the axis.
func (a *Axis) Values() []float64 {
	if a.values != nil {
		return append([]float64(nil), a.values...)
	}
	v := make([]float64, a.Size)
	for i := range v {
		v[i] = a.Offset + float64(i)*a.Scale
	}
	return v
}

// AxesManager holds a signal's axes: navigation axes first, then signal
// axes, each group ordered fastest-varying array dimension first.
type AxesManager struct {
	axes []*Axis
}

// NewAxesManager builds the axes for an array of the given shape whose last
// signalDims dimensions are signal dimensions.
func NewAxesManager(shape []int, signalDims int) (*AxesManager, error) {
	if signalDims < 0 || signalDims > len(shape) {
		return nil, fmt.Errorf("%w: %d signal dimensions for shape %v", ErrShape, signalDims, shape)
	}
	navDims := len(shape) - signalDims
	m := &AxesManager{axes: make([]*Axis, 0, len(shape))}
	for i := navDims - 1; i >= 0; i-- {
		m.axes = append(m.axes, NewAxis(axisName(navDims-1-i), shape[i], true))
	}
	for i := len(shape) - 1; i >= navDims; i-- {
		m.axes = append(m.axes, NewAxis(axisName(len(shape)-1-i), shape[i], false))
	}
	return m, nil
}

func axisName(i int) string {
	switch i {
	case 0:
		return "x"
	case 1:
		return "y"
	case 2:
		return "z"
	}
	return fmt.Sprintf("axis%d", i)
}

// Len returns the total number of axes.
func (m *AxesManager) Len() int { return len(m.axes) }

// Axis returns the i-th axis in manager order.
func (m *AxesManager) Axis(i int) *Axis { return m.axes[i] }

// All returns every axis in manager order.
func (m *AxesManager) All() []*Axis { return append([]*Axis(nil), m.axes...) }

// SignalAxes returns the axes that vary within one measurement.
func (m *AxesManager) SignalAxes() []*Axis {
	var out []*Axis
	for _, a := range m.axes {
		if !a.Navigate {
			out = append(out, a)
		}
	}
	return out
}

// NavigationAxes returns the axes that vary across measurements.
func (m *AxesManager) NavigationAxes() []*Axis {
	var out []*Axis
	for _, a := range m.axes {
		if a.Navigate {
			out = append(out, a)
		}
	}
	return out
}
