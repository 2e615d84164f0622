package signal

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDeferredMismatch is returned when a deferred computation produces data
// whose shape or dtype differs from what was declared up front.
var ErrDeferredMismatch = errors.New("signal: deferred result does not match declared shape/dtype")

// Deferred is a single-shot lazy array: a declared shape and dtype plus a
// thunk that produces the data the first time Compute is called. Later calls
// return the same result.
type Deferred struct {
	shape []int
	dtype DType
	thunk func() (*Array, error)

	mu   sync.Mutex
	done bool
	arr  *Array
	err  error
}

var _ Data = (*Deferred)(nil)

// NewDeferred returns a lazy node for thunk. The thunk is not called here.
func NewDeferred(shape []int, dtype DType, thunk func() (*Array, error)) *Deferred {
	return &Deferred{
		shape: append([]int(nil), shape...),
		dtype: dtype,
		thunk: thunk,
	}
}

// Shape returns the declared shape.
func (d *Deferred) Shape() []int { return append([]int(nil), d.shape...) }

// DType returns the declared dtype.
func (d *Deferred) DType() DType { return d.dtype }

// Computed reports whether the thunk has already run.
func (d *Deferred) Computed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Compute runs the thunk on first use and returns its result.
func (d *Deferred) Compute() (*Array, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return d.arr, d.err
	}
	d.done = true

	arr, err := d.thunk()
	if err != nil {
		d.err = err
		return nil, err
	}
	if arr.DType() != d.dtype || !SameShape(arr.Shape(), d.shape) {
		d.err = fmt.Errorf("%w: declared %v %s, got %v %s",
			ErrDeferredMismatch, d.shape, d.dtype, arr.Shape(), arr.DType())
		return nil, d.err
	}
	d.arr = arr
	return arr, nil
}
