package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ironsheep/image-signal-io/internal/render"
	"github.com/ironsheep/image-signal-io/internal/scalebar"
	"github.com/ironsheep/image-signal-io/internal/signal"
	"github.com/ironsheep/image-signal-io/internal/units"
)

// Mode is how a write is carried out.
type Mode int

const (
	// ModeDirect hands the pixels straight to the codec.
	ModeDirect Mode = iota
	// ModeRendered draws the data onto a figure and exports the figure.
	ModeRendered
)

func (m Mode) String() string {
	if m == ModeRendered {
		return "rendered"
	}
	return "direct"
}

// WriteOptions control FileWriter.
type WriteOptions struct {
	// ScaleBar overlays a calibrated scale bar.
	ScaleBar bool
	// ScaleBarOptions override the scale bar defaults.
	ScaleBarOptions *scalebar.Options
	// OutputSize sets the rendered image size in pixels.
	OutputSize OutputSize
	// Params go to the codec on a direct write and to the figure export on
	// a rendered one.
	Params Params
}

// Overlay draws a scale bar for an image occupying extent on dst.
type Overlay interface {
	Draw(dst draw.Image, extent image.Rectangle, dataWidth int, dx float64, units string, opts scalebar.Options) error
}

// Writer writes signals as images. A nil Overlay means scale bars are
// unavailable; requests for one are downgraded with a warning.
type Writer struct {
	Overlay Overlay
	Logger  *zap.Logger
}

// DefaultWriter returns a Writer drawing scale bars with scalebar.Renderer.
func DefaultWriter() *Writer {
	return &Writer{Overlay: scalebar.Renderer{}}
}

// FileWriter writes sig to filename using DefaultWriter.
func FileWriter(filename string, sig *signal.Signal, opts WriteOptions) error {
	return DefaultWriter().Write(filename, sig, opts)
}

func (w *Writer) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

// Mode reports how Write would handle opts. A single zero output size
// counts as unset.
func (w *Writer) Mode(opts WriteOptions) Mode {
	if (opts.ScaleBar && w.Overlay != nil) || opts.OutputSize.IsSet() {
		return ModeRendered
	}
	return ModeDirect
}

// Write writes sig to filename.
//
// The mode follows Mode(opts). A direct write picks the codec from the file
// extension and forwards opts.Params as codec options: quality for JPEG,
// compress_level and optimize for PNG, palettesize for GIF, plain for
// Netpbm. Unknown keys are logged at debug level and ignored.
//
// A rendered write draws the data onto a figure sized by opts.OutputSize
// (native size when unset), adds the scale bar when asked, and exports the
// figure with quality and compress_level honoured. It fails with a
// *FormatError for extensions the figure exporter cannot write, with
// ErrIncompatibleGeometry when sig has no 2-D axis pair, and with
// ErrCalibrationMismatch when the pair's scale or units differ.
//
// A scale bar request on a Writer with no Overlay is logged as a warning and
// written without the bar.
func (w *Writer) Write(filename string, sig *signal.Signal, opts WriteOptions) error {
	log := w.logger()
	if opts.ScaleBar && w.Overlay == nil {
		log.Warn("scale bar overlay unavailable, saving without scale bar",
			zap.String("file", filename))
		opts.ScaleBar = false
	}

	arr, err := sig.Data.Compute()
	if err != nil {
		return err
	}

	mode := w.Mode(opts)
	log.Debug("writing image",
		zap.String("file", filename),
		zap.Stringer("mode", mode),
		zap.Ints("shape", arr.Shape()),
		zap.String("dtype", string(arr.DType())))

	if mode == ModeDirect {
		return w.writeDirect(filename, arr, opts.Params)
	}
	return w.writeRendered(filename, sig, arr, opts)
}

func (w *Writer) writeDirect(filename string, arr *signal.Array, params Params) (err error) {
	if nf, ok := netpbmFormats[fileExt(filename)]; ok {
		if hasAlpha(arr) {
			return fmt.Errorf("%w: %s", ErrAlphaUnsupported, fileExt(filename))
		}
		img, err := imageFromArray(arr)
		if err != nil {
			return err
		}
		return writeNetpbm(filename, img, nf, params, w.logger())
	}

	format, err := codecFormat(filename)
	if err != nil {
		return err
	}
	if format == imaging.JPEG && hasAlpha(arr) {
		return fmt.Errorf("%w: %s", ErrAlphaUnsupported, format)
	}
	img, err := imageFromArray(arr)
	if err != nil {
		return err
	}
	img = prepareForFormat(img, format)

	encOpts, err := encodeOptions(format, params, w.logger())
	if err != nil {
		return err
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	return imaging.Encode(out, img, format, encOpts...)
}

func (w *Writer) writeRendered(filename string, sig *signal.Signal, arr *signal.Array, opts WriteOptions) error {
	axes, err := scaleBarAxes(sig)
	if err != nil {
		return err
	}

	size, err := opts.OutputSize.Resolve([2]int{axes[0].Size, axes[1].Size})
	if err != nil {
		return err
	}
	fig, err := render.NewFigure(size[0]/render.DefaultDPI, size[1]/render.DefaultDPI, render.DefaultDPI)
	if err != nil {
		return err
	}
	extent, err := fig.Imshow(arr)
	if err != nil {
		return err
	}

	ext := fileExt(filename)
	if !render.Supports(ext) {
		feature := "output size"
		if opts.ScaleBar {
			feature = "scale bar"
		}
		return &FormatError{Feature: feature, Extension: ext, Supported: render.SupportedFiletypes()}
	}

	if opts.ScaleBar {
		if err := w.drawScaleBar(fig, extent, axes, opts.ScaleBarOptions); err != nil {
			return err
		}
	}

	saveOpts, err := saveOptions(opts.Params, w.logger())
	if err != nil {
		return err
	}
	return fig.Savefig(filename, saveOpts)
}

func (w *Writer) drawScaleBar(fig *render.Figure, extent image.Rectangle, axes [2]*signal.Axis, over *scalebar.Options) error {
	if axes[0].Scale != axes[1].Scale || axes[0].Units != axes[1].Units {
		return fmt.Errorf("%w: %v %s vs %v %s", ErrCalibrationMismatch,
			axes[0].Scale, axes[0].Units, axes[1].Scale, axes[1].Units)
	}

	var sbOpts scalebar.Options
	if over != nil {
		sbOpts = *over
	}
	unitStr := axes[0].Units
	if unitStr == signal.Undefined {
		unitStr = "px"
		sbOpts.Dimension = scalebar.PixelLength
	} else {
		u, err := units.Parse(unitStr)
		if err != nil {
			return err
		}
		if u.IsReciprocalLength() {
			sbOpts.Dimension = scalebar.SILengthReciprocal
		}
	}

	w.logger().Debug("drawing scale bar",
		zap.Float64("scale", axes[0].Scale),
		zap.String("units", unitStr),
		zap.String("dimension", string(sbOpts.Dimension)))
	return w.Overlay.Draw(fig.Canvas(), extent, axes[0].Size, axes[0].Scale, unitStr, sbOpts)
}

// scaleBarAxes returns the (x, y) axis pair of the image: the two signal
// axes, or failing that the two navigation axes.
func scaleBarAxes(sig *signal.Signal) ([2]*signal.Axis, error) {
	if sa := sig.Axes.SignalAxes(); len(sa) == 2 {
		return [2]*signal.Axis{sa[0], sa[1]}, nil
	}
	if na := sig.Axes.NavigationAxes(); len(na) == 2 {
		return [2]*signal.Axis{na[0], na[1]}, nil
	}
	return [2]*signal.Axis{}, fmt.Errorf("%w: %d signal and %d navigation axes",
		ErrIncompatibleGeometry, sig.SignalDimension(), sig.NavigationDimension())
}

// saveOptions translates rendered-write params into figure export options.
func saveOptions(params Params, logger *zap.Logger) (render.SaveOptions, error) {
	var opts render.SaveOptions
	for _, key := range params.Keys() {
		switch key {
		case "quality":
			q, _, err := params.Int(key)
			if err != nil {
				return opts, err
			}
			opts.Quality = q
		case "compress_level":
			lvl, ok, err := params.Int(key)
			if err != nil {
				return opts, err
			}
			if ok {
				opts.CompressionLevel = pngCompression(lvl)
			}
		default:
			logger.Debug("ignoring unknown export parameter", zap.String("param", key))
		}
	}
	return opts, nil
}
