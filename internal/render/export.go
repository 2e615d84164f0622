package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"go.uber.org/multierr"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality is used when SaveOptions.Quality is unset.
const DefaultJPEGQuality = 75

// ErrUnsupportedFiletype is returned by Savefig for extensions the
// rasteriser cannot write.
var ErrUnsupportedFiletype = errors.New("render: unsupported file type")

// SaveOptions are the format-specific export parameters.
type SaveOptions struct {
	// Quality is the JPEG quality, 1 to 100.
	Quality int
	// CompressionLevel applies to PNG output.
	CompressionLevel png.CompressionLevel
}

var filetypes = map[string]func(SaveOptions) imgio.Encoder{
	"png":  pngEncoder,
	"jpg":  jpegEncoder,
	"jpeg": jpegEncoder,
	"tif":  tiffEncoder,
	"tiff": tiffEncoder,
}

// SupportedFiletypes lists the extensions Savefig can write, sorted.
func SupportedFiletypes() []string {
	out := make([]string, 0, len(filetypes))
	for ext := range filetypes {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether ext (with or without the leading dot) can be
// written by Savefig.
func Supports(ext string) bool {
	_, ok := filetypes[normalizeExt(ext)]
	return ok
}

// Savefig encodes the canvas to filename, choosing the format from its
// extension.
func (f *Figure) Savefig(filename string, opts SaveOptions) (err error) {
	ext := normalizeExt(filepath.Ext(filename))
	newEncoder, ok := filetypes[ext]
	if !ok {
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFiletype, ext, strings.Join(SupportedFiletypes(), ", "))
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	return newEncoder(opts)(out, f.canvas)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func pngEncoder(opts SaveOptions) imgio.Encoder {
	if opts.CompressionLevel == png.DefaultCompression {
		return imgio.PNGEncoder()
	}
	enc := &png.Encoder{CompressionLevel: opts.CompressionLevel}
	return func(w io.Writer, img image.Image) error {
		return enc.Encode(w, img)
	}
}

func jpegEncoder(opts SaveOptions) imgio.Encoder {
	q := opts.Quality
	if q <= 0 {
		q = DefaultJPEGQuality
	}
	return imgio.JPEGEncoder(q)
}

func tiffEncoder(SaveOptions) imgio.Encoder {
	return func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
}
