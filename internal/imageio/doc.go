// Package imageio reads raster image files into signals and writes signals
// back out as images.
//
// # Reading
//
// FileReader decodes a file through the imaging codec (PNG, JPEG, GIF, BMP
// and TIFF) or the Netpbm decoder (PBM, PGM, PPM) and turns the decoded image
// into a sample array:
//   - gray images become a (height, width) array of uint8 or uint16
//   - colour images whose channels 1 and 2 agree everywhere are collapsed to
//     channel 0, so they also come back as (height, width)
//   - any other colour image is packed into one rgb8, rgba8, rgb16 or rgba16
//     element per pixel, keeping the (height, width) shape
//
// With ReadOptions.Lazy the file is still decoded once for its shape and dtype,
// but the data itself is decoded on the first Compute.
//
// # Writing
//
// Writing has two modes, reported by Writer.Mode:
//   - direct: the pixels go straight to the codec chosen by the file
//     extension, with Params forwarded as codec options
//   - rendered: the data is drawn onto a figure of the requested pixel size,
//     optionally overlaid with a calibrated scale bar, and the figure is
//     exported
//
// The rendered mode is picked whenever a scale bar or a non-zero output size
// is requested. Only the figure exporter's file types (see
// render.SupportedFiletypes) can be written that way; BMP and GIF requests
// fail with a *FormatError. A Writer without an Overlay cannot draw scale bars
// and downgrades such requests to a plain write, logging a warning.
//
// # Scale Bars
//
// The bar is derived from the x/y axis pair: the two signal axes, or failing
// that the two navigation axes. Both axes must share scale and units.
// Undefined units produce a bar in pixels; reciprocal lengths such as "1/nm"
// produce a reciprocal bar.
//
// # Errors
//
// Codec errors (missing file, unknown format) are returned as the codec
// reported them, so errors.Is(err, fs.ErrNotExist) works. Plugin-level
// failures wrap one of the sentinel errors in errors.go.
//
// # Usage
//
//	sig, err := imageio.Load("haadf.png", imageio.ReadOptions{})
//	if err != nil {
//	    return err
//	}
//	for _, ax := range sig.Axes.All() {
//	    ax.Scale, ax.Units = 0.25, "nm"
//	}
//	err = imageio.Save("haadf_bar.jpg", sig, imageio.WriteOptions{
//	    ScaleBar:   true,
//	    OutputSize: imageio.OutputSize{800},
//	})
//
// Load and Save add the checks a host applies before dispatching to this
// plugin: registered extension, uniform axes and writable dimensions.
package imageio
