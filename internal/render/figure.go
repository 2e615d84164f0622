package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-signal-io/internal/signal"
)

// DefaultDPI is the rasterisation density used for exported figures.
const DefaultDPI = 100

var (
	// ErrInvalidFigure is returned for figures with no pixels.
	ErrInvalidFigure = errors.New("render: invalid figure size")

	// ErrUnsupportedShape is returned when data cannot be shown as an image.
	ErrUnsupportedShape = errors.New("render: data cannot be displayed as an image")
)

// Figure is an off-screen raster canvas sized in inches at a fixed density.
type Figure struct {
	dpi    float64
	canvas *image.RGBA
}

// NewFigure returns a white canvas of width×height inches at dpi.
func NewFigure(widthIn, heightIn, dpi float64) (*Figure, error) {
	w := int(math.Round(widthIn * dpi))
	h := int(math.Round(heightIn * dpi))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %vx%v in at %v dpi", ErrInvalidFigure, widthIn, heightIn, dpi)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	return &Figure{dpi: dpi, canvas: canvas}, nil
}

// Canvas returns the figure's pixels.
func (f *Figure) Canvas() *image.RGBA { return f.canvas }

// DPI returns the figure's rasterisation density.
func (f *Figure) DPI() float64 { return f.dpi }

// Size returns the canvas size in pixels.
func (f *Figure) Size() (width, height int) {
	b := f.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Imshow draws a onto the whole canvas without axes or border, keeping the
// data's aspect ratio and centring it. Plain 2-D data is mapped through a
// gray colormap spanning its min and max; colour data is drawn as is.
// It returns the canvas rectangle the image occupies.
//
// Accepted shapes are (h, w), (h, w, 3), (h, w, 4) and packed (h, w). Data
// is upscaled with nearest-neighbour sampling so pixels stay sharp, and
// downscaled with a box filter. Anything else fails with ErrUnsupportedShape.
//
// A 16x8 array on a 512x512 canvas lands in (0,128)-(512,384):
//
//	extent, err := fig.Imshow(arr)
func (f *Figure) Imshow(a *signal.Array) (image.Rectangle, error) {
	src, err := displayImage(a)
	if err != nil {
		return image.Rectangle{}, err
	}

	dataW, dataH := src.Bounds().Dx(), src.Bounds().Dy()
	cw, ch := f.Size()
	scale := math.Min(float64(cw)/float64(dataW), float64(ch)/float64(dataH))
	dw := maxInt(1, int(math.Round(float64(dataW)*scale)))
	dh := maxInt(1, int(math.Round(float64(dataH)*scale)))

	var scaled image.Image = src
	if dw != dataW || dh != dataH {
		filter := imaging.NearestNeighbor
		if scale < 1 {
			filter = imaging.Box
		}
		scaled = imaging.Resize(src, dw, dh, filter)
	}

	x0, y0 := (cw-dw)/2, (ch-dh)/2
	rect := image.Rect(x0, y0, x0+dw, y0+dh)
	draw.Draw(f.canvas, rect, scaled, scaled.Bounds().Min, draw.Over)
	return rect, nil
}

func displayImage(a *signal.Array) (image.Image, error) {
	a = signal.RGBXToRegular(a)
	shape := a.Shape()
	switch {
	case len(shape) == 2 && shape[0] > 0 && shape[1] > 0:
		return grayImage(a), nil
	case len(shape) == 3 && shape[0] > 0 && shape[1] > 0 && (shape[2] == 3 || shape[2] == 4):
		return colorImage(a), nil
	}
	return nil, fmt.Errorf("%w: shape %v", ErrUnsupportedShape, shape)
}

// grayImage normalises samples linearly so that the minimum maps to black
// and the maximum to white. Constant data maps to black.
func grayImage(a *signal.Array) *image.Gray {
	shape := a.Shape()
	h, w := shape[0], shape[1]
	data := a.Data()

	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := float64(hi - lo)

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := range row {
			v := data[y*w+x]
			if span > 0 {
				row[x] = uint8(math.Round(float64(v-lo) / span * 255))
			}
		}
	}
	return img
}

// colorImage converts an (h, w, 3|4) array to 8-bit NRGBA. Wider samples
// keep their high byte.
func colorImage(a *signal.Array) *image.NRGBA {
	shape := a.Shape()
	h, w, c := shape[0], shape[1], shape[2]
	shift := 0
	switch a.DType() {
	case signal.Uint16:
		shift = 8
	case signal.Uint32:
		shift = 24
	}
	data := a.Data()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := data[(y*w+x)*c : (y*w+x+1)*c]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(px[0] >> shift)
			img.Pix[i+1] = uint8(px[1] >> shift)
			img.Pix[i+2] = uint8(px[2] >> shift)
			img.Pix[i+3] = 0xff
			if c == 4 {
				img.Pix[i+3] = uint8(px[3] >> shift)
			}
		}
	}
	return img
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
