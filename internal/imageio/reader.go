package imageio

import (
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-signal-io/internal/signal"
)

// ReadOptions control FileReader.
type ReadOptions struct {
	// Lazy defers the decode until the data is first computed. The file is
	// still decoded once up front to learn its shape and dtype.
	Lazy bool
	// Params are passed to the codec. Recognised: auto_orientation.
	Params Params
}

// ReadResult is one dataset read from a file.
type ReadResult struct {
	Data     signal.Data
	Metadata signal.Metadata
}

// FileReader reads filename into a single dataset.
//
// The result's data has shape (height, width) whatever the file held: gray
// files give uint8 or uint16 samples, colour files whose channels 1 and 2 are
// identical are collapsed to channel 0, and other colour files are packed
// into rgb8, rgba8, rgb16 or rgba16 elements. Metadata records the base name
// of filename and "image" as the record type.
//
// # Lazy Reads
//
// With opts.Lazy the file is decoded once up front to learn its shape and
// dtype, and the returned data is a *signal.Deferred that decodes it again on
// the first Compute, with the same Params. If the file changed in between,
// Compute fails with signal.ErrDeferredMismatch.
//
// # Errors
//
// Codec errors such as a missing file or an unknown format are returned as
// the codec reported them.
//
// # Example Usage
//
//	res, err := imageio.FileReader("stack.tif", imageio.ReadOptions{Lazy: true})
//	if err != nil {
//	    return err
//	}
//	arr, err := res[0].Data.Compute()
func FileReader(filename string, opts ReadOptions) ([]ReadResult, error) {
	arr, err := readData(filename, opts.Params)
	if err != nil {
		return nil, err
	}

	var data signal.Data = arr
	if opts.Lazy {
		params := opts.Params
		data = signal.NewDeferred(arr.Shape(), arr.DType(), func() (*signal.Array, error) {
			return readData(filename, params)
		})
	}

	return []ReadResult{{
		Data: data,
		Metadata: signal.Metadata{
			General: signal.GeneralMetadata{OriginalFilename: filepath.Base(filename)},
			Signal:  signal.SignalMetadata{SignalType: "", RecordBy: "image"},
		},
	}}, nil
}

// readData decodes filename and applies the grayscale collapse to colour
// results.
func readData(filename string, params Params) (*signal.Array, error) {
	orient, _, err := params.Bool("auto_orientation")
	if err != nil {
		return nil, err
	}
	img, err := imaging.Open(filename, imaging.AutoOrientation(orient))
	if err != nil {
		return nil, err
	}
	arr, err := arrayFromImage(img)
	if err != nil {
		return nil, err
	}
	if arr.Ndim() > 2 {
		arr = CollapseGrayscale(arr)
	}
	return arr, nil
}
