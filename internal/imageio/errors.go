package imageio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompatibleGeometry is returned when no single pair of axes can
	// carry a scale bar.
	ErrIncompatibleGeometry = errors.New("data not compatible with saving scale bar")

	// ErrCalibrationMismatch is returned when the two image axes disagree on
	// scale or units.
	ErrCalibrationMismatch = errors.New("scale and units must be the same for each axis")

	// ErrUnsupportedOutput is the sentinel wrapped by FormatError.
	ErrUnsupportedOutput = errors.New("output format not supported for rendered export")

	// ErrInvalidOutputSize is returned for output sizes that are not one or
	// two positive numbers.
	ErrInvalidOutputSize = errors.New("invalid output size")

	// ErrAlphaUnsupported is returned when an RGBA image is written to a
	// format without an alpha channel.
	ErrAlphaUnsupported = errors.New("format does not support an alpha channel")

	// ErrUnsupportedShape is returned for arrays that are not images.
	ErrUnsupportedShape = errors.New("array cannot be written as an image")

	// ErrNonUniformAxis is returned by Save for signals with a non-uniform
	// axis.
	ErrNonUniformAxis = errors.New("non-uniform axes are not supported")

	// ErrUnsupportedDimensions is returned by Save for signals whose
	// dimensions the plugin cannot write.
	ErrUnsupportedDimensions = errors.New("signal dimensions not supported")

	// ErrUnregisteredExtension is returned by Load and Save for extensions
	// no plugin is registered for.
	ErrUnregisteredExtension = errors.New("file extension not registered")
)

// FormatError reports a rendered export to a file type the rasteriser
// cannot write.
type FormatError struct {
	// Feature is what required the rendered path: "scale bar" or
	// "output size".
	Feature   string
	Extension string
	Supported []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("exporting with a %s to %q is not supported; supported file types: %s",
		e.Feature, e.Extension, strings.Join(e.Supported, ", "))
}

func (e *FormatError) Unwrap() error { return ErrUnsupportedOutput }
