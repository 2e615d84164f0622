package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		dim    Dimension
		factor float64
	}{
		{"m", Length, 1},
		{"nm", Length, 1e-9},
		{"µm", Length, 1e-6},
		{"μm", Length, 1e-6},
		{"um", Length, 1e-6},
		{"mm", Length, 1e-3},
		{"dam", Length, 10},
		{"Å", Length, 1e-10},
		{"nanometer", Length, 1e-9},
		{"px", Pixel, 1},
		{"kpx", Pixel, 1e3},
		{"pixel", Pixel, 1},
		{"1/nm", ReciprocalLength, 1e9},
		{"1 / µm", ReciprocalLength, 1e6},
		{"nm^-1", ReciprocalLength, 1e9},
		{"nm**-1", ReciprocalLength, 1e9},
		{"nm⁻¹", ReciprocalLength, 1e9},
		{"1/Å", ReciprocalLength, 1e10},
		{"s", Other, 1},
		{"ms", Other, 1e-3},
		{"keV", Other, 1e3},
		{"1/s", Other, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.dim, u.Dim)
			assert.InEpsilon(t, tt.factor, u.Factor, 1e-12)
		})
	}
}

func TestParse_Undefined(t *testing.T) {
	for _, in := range []string{"", "furlong", "1/", "xyz^-1", "Qm"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.True(t, errors.Is(err, ErrUndefinedUnit), "got %v", err)
		})
	}
}

func TestUnit_Predicates(t *testing.T) {
	u, err := Parse("1/nm")
	require.NoError(t, err)
	assert.True(t, u.IsReciprocalLength())
	assert.False(t, u.IsLength())

	u, err = Parse("nm")
	require.NoError(t, err)
	assert.True(t, u.IsLength())
	assert.False(t, u.IsReciprocalLength())

	u, err = Parse("px")
	require.NoError(t, err)
	assert.True(t, u.IsPixel())
}
