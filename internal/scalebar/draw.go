package scalebar

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Renderer draws scale bars onto rendered images.
type Renderer struct{}

// Draw computes a layout for the image occupying extent and paints it onto
// dst.
func (Renderer) Draw(dst draw.Image, extent image.Rectangle, dataWidth int, dx float64, units string, opts Options) error {
	l, err := Compute(opts, dx, units, extent, dataWidth)
	if err != nil {
		return err
	}
	l.Draw(dst)
	return nil
}

// Draw paints the box, the bar and the text of l onto dst.
func (l *Layout) Draw(dst draw.Image) {
	if l.Frameon && l.Background.A > 0 {
		bg := l.Background
		src := image.NewUniform(color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
		mask := image.NewUniform(color.Alpha{A: bg.A})
		draw.DrawMask(dst, l.Box, src, image.Point{}, mask, image.Point{}, draw.Over)
	}

	fg := image.NewUniform(l.Foreground)
	draw.Draw(dst, l.Bar, fg, image.Point{}, draw.Over)

	d := &font.Drawer{Dst: dst, Src: fg, Face: face}
	for _, t := range l.Texts {
		d.Dot = fixed.P(t.Dot.X, t.Dot.Y)
		d.DrawString(t.S)
	}
}
