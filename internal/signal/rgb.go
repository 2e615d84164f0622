package signal

import "fmt"

// IsRGBX reports whether a holds packed colour elements.
func IsRGBX(a *Array) bool { return a.dtype.IsRGBX() }

// RegularToRGBX packs the trailing channel dimension of a (…, 3|4) uint8 or
// uint16 array into one rgb(a) element per pixel. The result has one
// dimension less than a and shares no storage with it.
func RegularToRGBX(a *Array) (*Array, error) {
	if a.Ndim() < 1 {
		return nil, fmt.Errorf("%w: cannot pack a scalar", ErrShape)
	}
	channels := a.shape[len(a.shape)-1]
	dt, err := RGBXOf(a.dtype, channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	out := &Array{
		shape: append([]int(nil), a.shape[:len(a.shape)-1]...),
		dtype: dt,
		data:  append([]uint32(nil), a.data...),
	}
	return out, nil
}

// RGBXToRegular unpacks a packed array into a plain array with a trailing
// channel dimension. Plain arrays are returned unchanged.
func RGBXToRegular(a *Array) *Array {
	if !a.dtype.IsRGBX() {
		return a
	}
	shape := append(append([]int(nil), a.shape...), a.dtype.Channels())
	return &Array{
		shape: shape,
		dtype: a.dtype.Base(),
		data:  append([]uint32(nil), a.data...),
	}
}
