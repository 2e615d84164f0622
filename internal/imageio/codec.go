package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/ironsheep/image-signal-io/internal/signal"
)

// extensionAliases maps registered extensions the codec does not know by
// name onto ones it does.
var extensionAliases = map[string]string{
	"dib": "bmp",
	"jpe": "jpeg",
}

// codecFormat returns the codec format for filename's extension. Unknown
// extensions yield the codec's own error.
func codecFormat(filename string) (imaging.Format, error) {
	ext := fileExt(filename)
	if alias, ok := extensionAliases[ext]; ok {
		ext = alias
	}
	return imaging.FormatFromExtension(ext)
}

// fileExt returns filename's extension, lower-cased and without the dot.
func fileExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// arrayFromImage copies a decoded image into a sample array. Gray images
// become (h, w); everything else becomes (h, w, 3) when opaque and
// (h, w, 4) otherwise, with 16-bit samples for 16-bit colour models.
func arrayFromImage(img image.Image) (*signal.Array, error) {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedShape)
	}

	switch m := img.(type) {
	case *image.Gray:
		a := signal.NewArray(signal.Uint8, h, w)
		data := a.Data()
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+w]
			for x, v := range row {
				data[y*w+x] = uint32(v)
			}
		}
		return a, nil
	case *image.Gray16:
		a := signal.NewArray(signal.Uint16, h, w)
		data := a.Data()
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+2*w]
			for x := 0; x < w; x++ {
				data[y*w+x] = uint32(row[2*x])<<8 | uint32(row[2*x+1])
			}
		}
		return a, nil
	}

	dtype, shift := signal.Uint8, 8
	switch m := img.(type) {
	case *image.RGBA64, *image.NRGBA64:
		dtype, shift = signal.Uint16, 0
	case interface{ MaxValue() uint16 }:
		// Netpbm images declare their sample ceiling.
		if m.MaxValue() > 0xff {
			dtype, shift = signal.Uint16, 0
		}
	}
	c := 4
	if isOpaque(img) {
		c = 3
	}

	a := signal.NewArray(dtype, h, w, c)
	data := a.Data()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := nrgba64At(img, b.Min.X+x, b.Min.Y+y)
			i := (y*w + x) * c
			data[i+0] = uint32(px.R) >> shift
			data[i+1] = uint32(px.G) >> shift
			data[i+2] = uint32(px.B) >> shift
			if c == 4 {
				data[i+3] = uint32(px.A) >> shift
			}
		}
	}
	return a, nil
}

// nrgba64At reads a non-premultiplied pixel, avoiding the premultiply
// round trip for images that are already non-premultiplied.
func nrgba64At(img image.Image, x, y int) color.NRGBA64 {
	switch m := img.(type) {
	case *image.NRGBA:
		c := m.NRGBAAt(x, y)
		return color.NRGBA64{
			R: uint16(c.R) * 0x101, G: uint16(c.G) * 0x101,
			B: uint16(c.B) * 0x101, A: uint16(c.A) * 0x101,
		}
	case *image.NRGBA64:
		return m.NRGBA64At(x, y)
	}
	return color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// imageFromArray converts a sample array back to an image. Packed arrays
// are unpacked first; uint32 samples are narrowed to 16 bits, saturating.
func imageFromArray(a *signal.Array) (image.Image, error) {
	a = signal.RGBXToRegular(a)
	shape := a.Shape()
	data := a.Data()

	switch {
	case len(shape) == 2 && shape[0] > 0 && shape[1] > 0:
		h, w := shape[0], shape[1]
		r := image.Rect(0, 0, w, h)
		if a.DType() == signal.Uint8 {
			img := image.NewGray(r)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					img.Pix[y*img.Stride+x] = uint8(data[y*w+x])
				}
			}
			return img, nil
		}
		img := image.NewGray16(r)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray16(x, y, color.Gray16{Y: narrow16(data[y*w+x])})
			}
		}
		return img, nil

	case len(shape) == 3 && shape[0] > 0 && shape[1] > 0 && (shape[2] == 3 || shape[2] == 4):
		h, w, c := shape[0], shape[1], shape[2]
		r := image.Rect(0, 0, w, h)
		if a.DType() == signal.Uint8 {
			img := image.NewNRGBA(r)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					px := data[(y*w+x)*c : (y*w+x+1)*c]
					alpha := uint8(0xff)
					if c == 4 {
						alpha = uint8(px[3])
					}
					img.SetNRGBA(x, y, color.NRGBA{R: uint8(px[0]), G: uint8(px[1]), B: uint8(px[2]), A: alpha})
				}
			}
			return img, nil
		}
		img := image.NewNRGBA64(r)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := data[(y*w+x)*c : (y*w+x+1)*c]
				alpha := uint16(0xffff)
				if c == 4 {
					alpha = narrow16(px[3])
				}
				img.SetNRGBA64(x, y, color.NRGBA64{R: narrow16(px[0]), G: narrow16(px[1]), B: narrow16(px[2]), A: alpha})
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: shape %v", ErrUnsupportedShape, shape)
}

func narrow16(v uint32) uint16 {
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}

// hasAlpha reports whether a (possibly packed) array carries an alpha
// channel.
func hasAlpha(a *signal.Array) bool {
	if a.DType().IsRGBX() {
		return a.DType().Channels() == 4
	}
	shape := a.Shape()
	return len(shape) == 3 && shape[2] == 4
}

// prepareForFormat adapts img to what format can hold. 8-bit formats get
// 8-bit gray, and GIF gets gray through an exact 256-level palette instead
// of the codec's colour quantiser.
func prepareForFormat(img image.Image, format imaging.Format) image.Image {
	if format == imaging.PNG || format == imaging.TIFF {
		return img
	}
	var gray *image.Gray
	switch m := img.(type) {
	case *image.Gray:
		gray = m
	case *image.Gray16:
		gray = image.NewGray(m.Bounds())
		for i := 0; i < len(gray.Pix); i++ {
			gray.Pix[i] = m.Pix[2*i]
		}
	default:
		return img
	}
	if format != imaging.GIF {
		return gray
	}
	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = color.Gray{Y: uint8(i)}
	}
	p := image.NewPaletted(gray.Bounds(), palette)
	copy(p.Pix, gray.Pix)
	return p
}

// pngCompression maps a 0 to 9 zlib-style level onto the encoder's levels.
func pngCompression(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	}
	return png.BestCompression
}

// encodeOptions translates direct-write params into codec options.
func encodeOptions(format imaging.Format, params Params, logger *zap.Logger) ([]imaging.EncodeOption, error) {
	var opts []imaging.EncodeOption
	// Sorted keys, so optimize is applied after compress_level and wins.
	for _, key := range params.Keys() {
		switch key {
		case "quality":
			q, ok, err := params.Int(key)
			if err != nil {
				return nil, err
			}
			if ok {
				opts = append(opts, imaging.JPEGQuality(q))
			}
		case "compress_level":
			lvl, ok, err := params.Int(key)
			if err != nil {
				return nil, err
			}
			if ok {
				opts = append(opts, imaging.PNGCompressionLevel(pngCompression(lvl)))
			}
		case "optimize":
			on, ok, err := params.Bool(key)
			if err != nil {
				return nil, err
			}
			if ok && on {
				opts = append(opts, imaging.PNGCompressionLevel(png.BestCompression))
			}
		case "palettesize":
			n, ok, err := params.Int(key)
			if err != nil {
				return nil, err
			}
			if ok {
				opts = append(opts, imaging.GIFNumColors(n))
			}
		default:
			logger.Debug("ignoring unknown write parameter",
				zap.String("param", key),
				zap.Stringer("format", format))
		}
	}
	return opts, nil
}
