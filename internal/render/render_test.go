package render

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-signal-io/internal/signal"
)

func TestNewFigure(t *testing.T) {
	f, err := NewFigure(5.12, 5.12, DefaultDPI)
	require.NoError(t, err)

	w, h := f.Size()
	assert.Equal(t, 512, w)
	assert.Equal(t, 512, h)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.Canvas().RGBAAt(10, 10))

	_, err = NewFigure(0, 1, DefaultDPI)
	assert.True(t, errors.Is(err, ErrInvalidFigure))
}

func TestImshow_FillsCanvas(t *testing.T) {
	f, err := NewFigure(5.12, 5.12, DefaultDPI)
	require.NoError(t, err)

	extent, err := f.Imshow(signal.Arange(signal.Uint8, 16, 16))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 512), extent)

	// Min maps to black, max to white.
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, f.Canvas().RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.Canvas().RGBAAt(511, 511))
}

func TestImshow_KeepsAspect(t *testing.T) {
	f, err := NewFigure(5.12, 5.12, DefaultDPI)
	require.NoError(t, err)

	extent, err := f.Imshow(signal.Arange(signal.Uint16, 8, 16))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 128, 512, 384), extent)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.Canvas().RGBAAt(0, 0))
}

func TestImshow_Color(t *testing.T) {
	a := signal.NewArray(signal.Uint8, 2, 2, 3)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			a.Set(200, y, x, 0)
		}
	}
	packed, err := signal.RegularToRGBX(a)
	require.NoError(t, err)

	f, err := NewFigure(1, 1, DefaultDPI)
	require.NoError(t, err)
	_, err = f.Imshow(packed)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{200, 0, 0, 255}, f.Canvas().RGBAAt(50, 50))
}

func TestImshow_UnsupportedShape(t *testing.T) {
	f, err := NewFigure(1, 1, DefaultDPI)
	require.NoError(t, err)

	_, err = f.Imshow(signal.NewArray(signal.Uint8, 4))
	assert.True(t, errors.Is(err, ErrUnsupportedShape))

	_, err = f.Imshow(signal.NewArray(signal.Uint8, 4, 4, 2))
	assert.True(t, errors.Is(err, ErrUnsupportedShape))
}

func TestSavefig(t *testing.T) {
	f, err := NewFigure(0.64, 0.48, DefaultDPI)
	require.NoError(t, err)
	_, err = f.Imshow(signal.Arange(signal.Uint8, 12, 16))
	require.NoError(t, err)

	for _, ext := range []string{"png", "jpg", "jpeg", "tif"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "figure."+ext)
			require.NoError(t, f.Savefig(path, SaveOptions{Quality: 90}))

			img, err := imaging.Open(path)
			require.NoError(t, err)
			assert.Equal(t, 64, img.Bounds().Dx())
			assert.Equal(t, 48, img.Bounds().Dy())
		})
	}
}

func TestSavefig_Unsupported(t *testing.T) {
	f, err := NewFigure(1, 1, DefaultDPI)
	require.NoError(t, err)

	for _, ext := range []string{"bmp", "gif", ""} {
		err := f.Savefig(filepath.Join(t.TempDir(), "figure."+ext), SaveOptions{})
		assert.True(t, errors.Is(err, ErrUnsupportedFiletype), "%s: %v", ext, err)
	}
	assert.False(t, Supports(".bmp"))
	assert.True(t, Supports(".PNG"))
	assert.Equal(t, []string{"jpeg", "jpg", "png", "tif", "tiff"}, SupportedFiletypes())
}
