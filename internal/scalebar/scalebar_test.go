package scalebar

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-signal-io/internal/units"
)

func TestCompute_SILength(t *testing.T) {
	extent := image.Rect(0, 0, 1000, 1000)
	l, err := Compute(Options{}, 1, "nm", extent, 1000)
	require.NoError(t, err)

	assert.Equal(t, 200.0, l.Value)
	assert.Equal(t, "nm", l.Units)
	assert.Equal(t, 200, l.Length)
	assert.Equal(t, 200, l.Bar.Dx())
	require.Len(t, l.Texts, 1)
	assert.Equal(t, "200 nm", l.Texts[0].S)
}

func TestCompute_SwitchesPrefix(t *testing.T) {
	// 0.2 * 500 px * 20 nm = 2 µm
	l, err := Compute(Options{}, 20, "nm", image.Rect(0, 0, 500, 500), 500)
	require.NoError(t, err)
	assert.Equal(t, "µm", l.Units)
	assert.Equal(t, 2.0, l.Value)
	assert.Equal(t, 100, l.Length)
}

func TestCompute_Reciprocal(t *testing.T) {
	l, err := Compute(Options{Dimension: SILengthReciprocal}, 0.1, "1/nm", image.Rect(0, 0, 512, 512), 512)
	require.NoError(t, err)
	assert.Equal(t, 10.0, l.Value)
	assert.Equal(t, "1/nm", l.Units)
	assert.Equal(t, 100, l.Length)
	assert.Equal(t, "10 1/nm", l.Texts[0].S)
}

func TestCompute_PixelLength(t *testing.T) {
	l, err := Compute(Options{Dimension: PixelLength}, 1, "px", image.Rect(0, 0, 512, 512), 512)
	require.NoError(t, err)
	assert.Equal(t, 100.0, l.Value)
	assert.Equal(t, "px", l.Units)
	assert.Equal(t, 100, l.Length)
}

func TestCompute_Zoom(t *testing.T) {
	// 16 data pixels drawn 512 wide: 3.2 nm target rounds to 2.5 nm = 80 px.
	l, err := Compute(Options{}, 1, "nm", image.Rect(0, 0, 512, 512), 16)
	require.NoError(t, err)
	assert.Equal(t, 2.5, l.Value)
	assert.Equal(t, 80, l.Length)
	assert.Equal(t, "2.5 nm", l.Texts[0].S)
}

func TestCompute_FixedValue(t *testing.T) {
	l, err := Compute(Options{FixedValue: 1, FixedUnits: "µm"}, 2, "nm", image.Rect(0, 0, 1000, 1000), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1.0, l.Value)
	assert.Equal(t, "µm", l.Units)
	assert.Equal(t, 500, l.Length)
}

func TestCompute_UnitsMustMatchDimension(t *testing.T) {
	_, err := Compute(Options{}, 1, "1/nm", image.Rect(0, 0, 100, 100), 100)
	assert.True(t, errors.Is(err, ErrInvalidUnits))

	_, err = Compute(Options{Dimension: PixelLength}, 1, "nm", image.Rect(0, 0, 100, 100), 100)
	assert.True(t, errors.Is(err, ErrInvalidUnits))

	_, err = Compute(Options{}, 1, "parsec-ish", image.Rect(0, 0, 100, 100), 100)
	assert.True(t, errors.Is(err, units.ErrUndefinedUnit))
}

func TestCompute_InvalidOptions(t *testing.T) {
	alpha := 1.5
	tests := []struct {
		name string
		opts Options
	}{
		{"dimension", Options{Dimension: "area"}},
		{"location", Options{Location: "somewhere"}},
		{"location code", Options{Location: "11"}},
		{"box alpha", Options{BoxAlpha: &alpha}},
		{"scale loc", Options{ScaleLoc: "left"}},
		{"color", Options{Color: "notacolor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.opts, 1, "nm", image.Rect(0, 0, 100, 100), 100)
			assert.True(t, errors.Is(err, ErrInvalidOption), "got %v", err)
		})
	}

	_, err := Compute(Options{}, 0, "nm", image.Rect(0, 0, 100, 100), 100)
	assert.True(t, errors.Is(err, ErrInvalidOption))
}

func TestCompute_Locations(t *testing.T) {
	extent := image.Rect(0, 0, 512, 512)
	tests := []struct {
		location string
		check    func(t *testing.T, box image.Rectangle)
	}{
		{"lower left", func(t *testing.T, box image.Rectangle) {
			assert.Equal(t, 1, box.Min.X)
			assert.Equal(t, 511, box.Max.Y)
		}},
		{"lower right", func(t *testing.T, box image.Rectangle) {
			assert.Equal(t, 511, box.Max.X)
			assert.Equal(t, 511, box.Max.Y)
		}},
		{"upper left", func(t *testing.T, box image.Rectangle) {
			assert.Equal(t, 1, box.Min.X)
			assert.Equal(t, 1, box.Min.Y)
		}},
		{"1", func(t *testing.T, box image.Rectangle) {
			assert.Equal(t, 511, box.Max.X)
			assert.Equal(t, 1, box.Min.Y)
		}},
		{"center", func(t *testing.T, box image.Rectangle) {
			assert.InDelta(t, 256, (box.Min.X+box.Max.X)/2, 1)
			assert.InDelta(t, 256, (box.Min.Y+box.Max.Y)/2, 1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			l, err := Compute(Options{Location: tt.location}, 1, "nm", extent, 512)
			require.NoError(t, err)
			tt.check(t, l.Box)
			assert.True(t, l.Bar.In(l.Box), "bar %v outside box %v", l.Bar, l.Box)
		})
	}
}

func TestCompute_TextBelowBarByDefault(t *testing.T) {
	l, err := Compute(Options{Label: "HAADF"}, 1, "nm", image.Rect(0, 0, 512, 512), 512)
	require.NoError(t, err)
	require.Len(t, l.Texts, 2)
	assert.Equal(t, "HAADF", l.Texts[0].S)
	assert.Less(t, l.Texts[0].Dot.Y, l.Bar.Min.Y)
	assert.Greater(t, l.Texts[1].Dot.Y, l.Bar.Max.Y)

	l, err = Compute(Options{ScaleLoc: "none"}, 1, "nm", image.Rect(0, 0, 512, 512), 512)
	require.NoError(t, err)
	assert.Empty(t, l.Texts)
}

func TestMerge(t *testing.T) {
	frameon := false
	merged := Defaults().Merge(Options{Location: "lower right", Frameon: &frameon})
	assert.Equal(t, "lower right", merged.Location)
	assert.False(t, *merged.Frameon)
	assert.Equal(t, 0.75, *merged.BoxAlpha)
	assert.Equal(t, SILength, merged.Dimension)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("k")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, c)

	c, err = parseColor("#FF000080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 0, 0, 128}, c)

	c, err = parseColor("00ff00")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, c)
}

func TestRenderer_Draw(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Gray{128}), image.Point{}, draw.Src)

	alpha := 1.0
	err := Renderer{}.Draw(dst, dst.Bounds(), 200, 1, "nm", Options{BoxAlpha: &alpha})
	require.NoError(t, err)

	l, err := Compute(Options{BoxAlpha: &alpha}, 1, "nm", dst.Bounds(), 200)
	require.NoError(t, err)

	// Bar pixels are black, box corners are white.
	bar := l.Bar.Min
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(bar.X, bar.Y))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(l.Box.Min.X, l.Box.Min.Y))
	// Outside the box the canvas is untouched.
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, dst.RGBAAt(199, 0))
}
