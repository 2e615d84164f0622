package scalebar

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/image-signal-io/internal/units"
)

var (
	// ErrInvalidOption is returned for option values that cannot be honoured.
	ErrInvalidOption = errors.New("scalebar: invalid option")

	// ErrInvalidUnits is returned when the units do not belong to the
	// requested dimension, e.g. seconds for an si-length bar.
	ErrInvalidUnits = errors.New("scalebar: units do not match dimension")
)

type candidate struct {
	symbol string
	factor float64
}

// Display units per dimension, ascending by factor.
var (
	lengthUnits = []candidate{
		{"fm", 1e-15}, {"pm", 1e-12}, {"nm", 1e-9}, {"µm", 1e-6},
		{"mm", 1e-3}, {"m", 1}, {"km", 1e3},
	}
	reciprocalUnits = []candidate{
		{"1/km", 1e-3}, {"1/m", 1}, {"1/mm", 1e3}, {"1/µm", 1e6},
		{"1/nm", 1e9}, {"1/pm", 1e12}, {"1/fm", 1e15},
	}
	pixelUnits = []candidate{
		{"px", 1}, {"kpx", 1e3}, {"Mpx", 1e6},
	}
)

var preferredValues = []float64{1, 2, 2.5, 5, 10, 15, 20, 25, 50, 75, 100, 125, 150, 200, 500, 750}

var face = basicfont.Face7x13

// Text is a string to draw with its baseline origin.
type Text struct {
	S   string
	Dot image.Point
}

// Layout is the resolved geometry of a scale bar on a canvas.
type Layout struct {
	// Value and Units describe what the bar represents, e.g. 200 "nm".
	Value float64
	Units string

	// Length is the bar length in canvas pixels.
	Length int

	Box   image.Rectangle
	Bar   image.Rectangle
	Texts []Text

	Frameon    bool
	Foreground color.NRGBA
	Background color.NRGBA
}

// Compute lays out a scale bar for an image drawn into extent.
//
// dx is the physical size of one data pixel in units, and dataWidth is the
// image width in data pixels; together with extent they give the zoom from
// data to canvas pixels. Unset options take their Defaults.
//
// # Value Selection
//
// Without FixedValue, the target length is LengthFraction of the data width
// in physical units. The display unit is the largest one of the dimension's
// family not bigger than the target, and the value is then rounded down to
// the nearest preferred value (1, 2, 2.5, 5, 10, 15, 20, 25, 50, 75, 100, 125,
// 150, 200, 500, 750). FixedValue and FixedUnits skip the search.
//
// # Errors
//
// Compute fails when unitStr does not belong to opts.Dimension (for example
// "nm" with pixel-length), when dx or dataWidth are not positive, or when an
// option fails Validate.
func Compute(opts Options, dx float64, unitStr string, extent image.Rectangle, dataWidth int) (*Layout, error) {
	opts = Defaults().Merge(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if dx <= 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
		return nil, fmt.Errorf("%w: scale %v must be positive", ErrInvalidOption, dx)
	}
	if dataWidth <= 0 || extent.Empty() {
		return nil, fmt.Errorf("%w: empty image extent", ErrInvalidOption)
	}

	u, err := unitsFor(opts.Dimension, unitStr)
	if err != nil {
		return nil, err
	}
	perPixel := dx * u.Factor

	var value, lengthBase float64
	var symbol string
	if opts.FixedValue > 0 {
		fixedUnits := opts.FixedUnits
		if fixedUnits == "" {
			fixedUnits = unitStr
		}
		fu, err := unitsFor(opts.Dimension, fixedUnits)
		if err != nil {
			return nil, err
		}
		value, symbol = opts.FixedValue, fixedUnits
		lengthBase = value * fu.Factor
	} else {
		target := opts.LengthFraction * float64(dataWidth) * perPixel
		c := pickCandidate(candidatesFor(opts.Dimension), target)
		value = niceValue(target / c.factor)
		symbol = c.symbol
		lengthBase = value * c.factor
	}

	zoom := float64(extent.Dx()) / float64(dataWidth)
	length := int(math.Round(lengthBase / perPixel * zoom))
	if length < 1 {
		length = 1
	}

	fg, err := parseColor(opts.Color)
	if err != nil {
		return nil, err
	}
	bg, err := parseColor(opts.BoxColor)
	if err != nil {
		return nil, err
	}
	bg.A = uint8(math.Round(*opts.BoxAlpha * float64(bg.A)))

	l := &Layout{
		Value:      value,
		Units:      symbol,
		Length:     length,
		Frameon:    *opts.Frameon,
		Foreground: fg,
		Background: bg,
	}
	l.arrange(opts, extent, formatValue(value)+" "+symbol)
	return l, nil
}

type element struct {
	text string // empty for the bar itself
	w, h int
}

func (l *Layout) arrange(opts Options, extent image.Rectangle, scaleText string) {
	metrics := face.Metrics()
	fontH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	textElem := func(s string) element {
		return element{text: s, w: font.MeasureString(face, s).Ceil(), h: fontH}
	}
	barH := int(math.Round(opts.HeightFraction * float64(extent.Dy())))
	if barH < 1 {
		barH = 1
	}

	var elems []element
	if opts.Label != "" && opts.LabelLoc != "bottom" && opts.LabelLoc != "none" {
		elems = append(elems, textElem(opts.Label))
	}
	if opts.ScaleLoc == "top" {
		elems = append(elems, textElem(scaleText))
	}
	elems = append(elems, element{w: l.Length, h: barH})
	if opts.ScaleLoc == "bottom" || opts.ScaleLoc == "" {
		elems = append(elems, textElem(scaleText))
	}
	if opts.Label != "" && opts.LabelLoc == "bottom" {
		elems = append(elems, textElem(opts.Label))
	}

	contentW, contentH := 0, 0
	for i, e := range elems {
		if e.w > contentW {
			contentW = e.w
		}
		contentH += e.h
		if i > 0 {
			contentH += opts.Sep
		}
	}

	pad := int(math.Round(opts.Pad * float64(fontH)))
	borderPad := int(math.Round(opts.BorderPad * float64(fontH)))
	boxW, boxH := contentW+2*pad, contentH+2*pad

	loc, _ := parseLocation(opts.Location)
	x0 := anchor(loc.h, extent.Min.X, extent.Max.X, boxW, borderPad)
	y0 := anchor(loc.v, extent.Min.Y, extent.Max.Y, boxH, borderPad)
	l.Box = image.Rect(x0, y0, x0+boxW, y0+boxH)

	y := y0 + pad
	for _, e := range elems {
		x := x0 + pad + (contentW-e.w)/2
		if e.text == "" {
			l.Bar = image.Rect(x, y, x+e.w, y+e.h)
		} else {
			l.Texts = append(l.Texts, Text{S: e.text, Dot: image.Pt(x, y+ascent)})
		}
		y += e.h + opts.Sep
	}
}

func anchor(side, lo, hi, size, inset int) int {
	switch side {
	case -1:
		return lo + inset
	case 1:
		return hi - inset - size
	}
	return lo + (hi-lo-size)/2
}

func candidatesFor(d Dimension) []candidate {
	switch d {
	case PixelLength:
		return pixelUnits
	case SILengthReciprocal:
		return reciprocalUnits
	}
	return lengthUnits
}

func unitsFor(d Dimension, s string) (units.Unit, error) {
	u, err := units.Parse(s)
	if err != nil {
		return units.Unit{}, err
	}
	want := units.Length
	switch d {
	case PixelLength:
		want = units.Pixel
	case SILengthReciprocal:
		want = units.ReciprocalLength
	}
	if u.Dim != want {
		return units.Unit{}, fmt.Errorf("%w: %q is not %s", ErrInvalidUnits, s, want)
	}
	return u, nil
}

// pickCandidate returns the largest unit not bigger than target, or the
// smallest unit if target is below all of them.
func pickCandidate(cands []candidate, target float64) candidate {
	best := cands[0]
	for _, c := range cands {
		if c.factor <= target*(1+1e-9) {
			best = c
		}
	}
	return best
}

// niceValue rounds v down to the nearest preferred value.
func niceValue(v float64) float64 {
	nice := v
	for _, p := range preferredValues {
		if p <= v*(1+1e-9) {
			nice = p
		}
	}
	return nice
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
