package signal

import "fmt"

// DType names the element type of an Array.
//
// Plain dtypes hold one unsigned sample per element. Packed dtypes (rgb8,
// rgba8, rgb16, rgba16) hold one composite colour value per element, stored
// as Channels() consecutive samples.
type DType string

const (
	Uint8  DType = "uint8"
	Uint16 DType = "uint16"
	Uint32 DType = "uint32"

	RGB8   DType = "rgb8"
	RGBA8  DType = "rgba8"
	RGB16  DType = "rgb16"
	RGBA16 DType = "rgba16"
)

// IsRGBX reports whether d is a packed colour dtype.
func (d DType) IsRGBX() bool {
	switch d {
	case RGB8, RGBA8, RGB16, RGBA16:
		return true
	}
	return false
}

// Channels returns the number of samples stored per element.
func (d DType) Channels() int {
	switch d {
	case RGB8, RGB16:
		return 3
	case RGBA8, RGBA16:
		return 4
	}
	return 1
}

// Base returns the sample dtype underlying d. Plain dtypes are their own base.
func (d DType) Base() DType {
	switch d {
	case RGB8, RGBA8:
		return Uint8
	case RGB16, RGBA16:
		return Uint16
	}
	return d
}

// Max returns the largest sample value representable by d.
func (d DType) Max() uint32 {
	switch d.Base() {
	case Uint8:
		return 0xff
	case Uint16:
		return 0xffff
	}
	return 0xffffffff
}

// Valid reports whether d is one of the known dtypes.
func (d DType) Valid() bool {
	switch d {
	case Uint8, Uint16, Uint32, RGB8, RGBA8, RGB16, RGBA16:
		return true
	}
	return false
}

// RGBXOf returns the packed dtype for the given sample dtype and channel count.
func RGBXOf(base DType, channels int) (DType, error) {
	switch {
	case base == Uint8 && channels == 3:
		return RGB8, nil
	case base == Uint8 && channels == 4:
		return RGBA8, nil
	case base == Uint16 && channels == 3:
		return RGB16, nil
	case base == Uint16 && channels == 4:
		return RGBA16, nil
	}
	return "", fmt.Errorf("no packed dtype for %d channels of %s", channels, base)
}
