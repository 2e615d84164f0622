package signal

import (
	"errors"
	"fmt"
)

// ErrShape is returned when data length, shape, and dtype disagree.
var ErrShape = errors.New("signal: shape mismatch")

// Data is anything that can stand in for pixel data: a materialised Array or
// a Deferred node that produces one on demand.
type Data interface {
	Shape() []int
	DType() DType
	Compute() (*Array, error)
}

// Array is a dense row-major array of unsigned samples.
//
// For packed dtypes every element occupies DType().Channels() consecutive
// samples, so a (h, w) rgb8 array holds h*w*3 samples.
type Array struct {
	shape []int
	dtype DType
	data  []uint32
}

var _ Data = (*Array)(nil)

// NewArray returns a zero-filled array of the given dtype and shape.
func NewArray(dtype DType, shape ...int) *Array {
	n := numElements(shape) * dtype.Channels()
	return &Array{
		shape: append([]int(nil), shape...),
		dtype: dtype,
		data:  make([]uint32, n),
	}
}

// FromSlice wraps data as an array. The slice is used without copying.
func FromSlice(dtype DType, data []uint32, shape ...int) (*Array, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: unknown dtype %q", ErrShape, dtype)
	}
	want := numElements(shape) * dtype.Channels()
	if len(data) != want {
		return nil, fmt.Errorf("%w: %d samples for shape %v of %s (want %d)", ErrShape, len(data), shape, dtype, want)
	}
	return &Array{
		shape: append([]int(nil), shape...),
		dtype: dtype,
		data:  data,
	}, nil
}

// Arange mirrors numpy's arange(n).reshape(shape).astype(dtype): values
// count up from zero in row-major order and wrap at the dtype's range.
func Arange(dtype DType, shape ...int) *Array {
	a := NewArray(dtype, shape...)
	limit := uint64(dtype.Max()) + 1
	for i := range a.data {
		a.data[i] = uint32(uint64(i) % limit)
	}
	return a
}

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Ndim returns the number of dimensions.
func (a *Array) Ndim() int { return len(a.shape) }

// Size returns the number of elements (not samples).
func (a *Array) Size() int { return numElements(a.shape) }

// Data returns the underlying sample slice.
func (a *Array) Data() []uint32 { return a.data }

// Compute returns the array itself.
func (a *Array) Compute() (*Array, error) { return a, nil }

// At returns the sample at idx. For packed arrays it returns the first
// channel of the element; use Pixel for all channels.
func (a *Array) At(idx ...int) uint32 {
	return a.data[a.offset(idx)*a.dtype.Channels()]
}

// Set stores v at idx, saturating to the dtype's range.
func (a *Array) Set(v uint32, idx ...int) {
	if m := a.dtype.Max(); v > m {
		v = m
	}
	a.data[a.offset(idx)*a.dtype.Channels()] = v
}

// Pixel returns the samples of element idx. The returned slice aliases the
// array.
func (a *Array) Pixel(idx ...int) []uint32 {
	c := a.dtype.Channels()
	off := a.offset(idx) * c
	return a.data[off : off+c]
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("signal: %d indices for %d-d array", len(idx), len(a.shape)))
	}
	off := 0
	for i, n := range a.shape {
		if idx[i] < 0 || idx[i] >= n {
			panic(fmt.Sprintf("signal: index %d out of range for axis %d with size %d", idx[i], i, n))
		}
		off = off*n + idx[i]
	}
	return off
}

func numElements(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// SameShape reports whether a and b have identical dimensions.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
