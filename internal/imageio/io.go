package imageio

import (
	"fmt"
	"path/filepath"

	"github.com/ironsheep/image-signal-io/internal/signal"
)

// Load reads filename as an image signal. The extension must be one the
// plugin is registered for.
func Load(filename string, opts ReadOptions) (*signal.Signal, error) {
	if !Plugin.HasExtension(filepath.Ext(filename)) {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredExtension, filepath.Ext(filename))
	}
	results, err := FileReader(filename, opts)
	if err != nil {
		return nil, err
	}
	res := results[0]
	sig, err := signal.NewSignal2D(res.Data)
	if err != nil {
		return nil, err
	}
	sig.Metadata = res.Metadata
	return sig, nil
}

// Save writes sig to filename with FileWriter after checking that the
// plugin can write it. A filename without an extension gets the default
// extension.
func Save(filename string, sig *signal.Signal, opts WriteOptions) error {
	return DefaultWriter().Save(filename, sig, opts)
}

// Save is the package-level Save using w for the write.
func (w *Writer) Save(filename string, sig *signal.Signal, opts WriteOptions) error {
	ext := filepath.Ext(filename)
	if ext == "" {
		filename += "." + Plugin.DefaultExtension
	} else if !Plugin.HasExtension(ext) {
		return fmt.Errorf("%w: %q", ErrUnregisteredExtension, ext)
	}

	for _, ax := range sig.Axes.All() {
		if !ax.IsUniform() {
			return fmt.Errorf("%w: axis %q", ErrNonUniformAxis, ax.Name)
		}
	}
	dims := Dimensions{Signal: sig.SignalDimension(), Navigation: sig.NavigationDimension()}
	if !Plugin.CanWrite(dims) {
		return fmt.Errorf("%w: signal %d, navigation %d", ErrUnsupportedDimensions, dims.Signal, dims.Navigation)
	}
	return w.Write(filename, sig, opts)
}
