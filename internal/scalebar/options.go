package scalebar

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension selects how the scale bar's value and units are interpreted.
type Dimension string

const (
	PixelLength        Dimension = "pixel-length"
	SILength           Dimension = "si-length"
	SILengthReciprocal Dimension = "si-length-reciprocal"
)

// Options configures a scale bar. Zero values mean "use the default"; see
// Defaults.
type Options struct {
	Dimension Dimension `json:"dimension,omitempty"`
	Location  string    `json:"location,omitempty"`

	// BoxAlpha is the opacity of the background box, 0 to 1.
	BoxAlpha *float64 `json:"box_alpha,omitempty"`
	BoxColor string   `json:"box_color,omitempty"`
	Color    string   `json:"color,omitempty"`
	Frameon  *bool    `json:"frameon,omitempty"`

	// LengthFraction is the target bar length relative to the image width.
	LengthFraction float64 `json:"length_fraction,omitempty"`
	// HeightFraction is the bar thickness relative to the image height.
	HeightFraction float64 `json:"height_fraction,omitempty"`

	// Pad and BorderPad are in fractions of the font height.
	Pad       float64 `json:"pad,omitempty"`
	BorderPad float64 `json:"border_pad,omitempty"`
	// Sep is the gap between bar and text, in pixels.
	Sep int `json:"sep,omitempty"`

	ScaleLoc string `json:"scale_loc,omitempty"`
	Label    string `json:"label,omitempty"`
	LabelLoc string `json:"label_loc,omitempty"`

	FixedValue float64 `json:"fixed_value,omitempty"`
	FixedUnits string  `json:"fixed_units,omitempty"`
}

// Defaults returns the options used when nothing is overridden.
func Defaults() Options {
	alpha := 0.75
	frameon := true
	return Options{
		Dimension:      SILength,
		Location:       "lower left",
		BoxAlpha:       &alpha,
		BoxColor:       "w",
		Color:          "k",
		Frameon:        &frameon,
		LengthFraction: 0.2,
		HeightFraction: 0.01,
		Pad:            0.2,
		BorderPad:      0.1,
		Sep:            5,
		ScaleLoc:       "bottom",
		LabelLoc:       "top",
	}
}

// Merge returns o with every non-zero field of over applied on top.
func (o Options) Merge(over Options) Options {
	if over.Dimension != "" {
		o.Dimension = over.Dimension
	}
	if over.Location != "" {
		o.Location = over.Location
	}
	if over.BoxAlpha != nil {
		v := *over.BoxAlpha
		o.BoxAlpha = &v
	}
	if over.BoxColor != "" {
		o.BoxColor = over.BoxColor
	}
	if over.Color != "" {
		o.Color = over.Color
	}
	if over.Frameon != nil {
		v := *over.Frameon
		o.Frameon = &v
	}
	if over.LengthFraction != 0 {
		o.LengthFraction = over.LengthFraction
	}
	if over.HeightFraction != 0 {
		o.HeightFraction = over.HeightFraction
	}
	if over.Pad != 0 {
		o.Pad = over.Pad
	}
	if over.BorderPad != 0 {
		o.BorderPad = over.BorderPad
	}
	if over.Sep != 0 {
		o.Sep = over.Sep
	}
	if over.ScaleLoc != "" {
		o.ScaleLoc = over.ScaleLoc
	}
	if over.Label != "" {
		o.Label = over.Label
	}
	if over.LabelLoc != "" {
		o.LabelLoc = over.LabelLoc
	}
	if over.FixedValue != 0 {
		o.FixedValue = over.FixedValue
	}
	if over.FixedUnits != "" {
		o.FixedUnits = over.FixedUnits
	}
	return o
}

// Validate checks option values that Compute cannot recover from.
func (o Options) Validate() error {
	switch o.Dimension {
	case PixelLength, SILength, SILengthReciprocal:
	default:
		return fmt.Errorf("%w: unknown dimension %q", ErrInvalidOption, o.Dimension)
	}
	if _, err := parseLocation(o.Location); err != nil {
		return err
	}
	if o.BoxAlpha != nil && (*o.BoxAlpha < 0 || *o.BoxAlpha > 1) {
		return fmt.Errorf("%w: box_alpha %v outside [0, 1]", ErrInvalidOption, *o.BoxAlpha)
	}
	if o.LengthFraction < 0 || o.LengthFraction > 1 {
		return fmt.Errorf("%w: length_fraction %v outside [0, 1]", ErrInvalidOption, o.LengthFraction)
	}
	if o.HeightFraction < 0 || o.HeightFraction > 1 {
		return fmt.Errorf("%w: height_fraction %v outside [0, 1]", ErrInvalidOption, o.HeightFraction)
	}
	for name, loc := range map[string]string{"scale_loc": o.ScaleLoc, "label_loc": o.LabelLoc} {
		switch loc {
		case "", "top", "bottom", "none":
		default:
			return fmt.Errorf("%w: %s %q", ErrInvalidOption, name, loc)
		}
	}
	return nil
}

type location struct {
	// -1 left/top, 0 center, 1 right/bottom
	h, v int
}

var locationCodes = map[int]string{
	1:  "upper right",
	2:  "upper left",
	3:  "lower left",
	4:  "lower right",
	5:  "right",
	6:  "center left",
	7:  "center right",
	8:  "lower center",
	9:  "upper center",
	10: "center",
}

func parseLocation(s string) (location, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if code, err := strconv.Atoi(name); err == nil {
		n, ok := locationCodes[code]
		if !ok {
			return location{}, fmt.Errorf("%w: location code %d", ErrInvalidOption, code)
		}
		name = n
	}
	switch name {
	case "upper right", "best":
		return location{h: 1, v: -1}, nil
	case "upper left":
		return location{h: -1, v: -1}, nil
	case "lower left", "":
		return location{h: -1, v: 1}, nil
	case "lower right":
		return location{h: 1, v: 1}, nil
	case "center left":
		return location{h: -1, v: 0}, nil
	case "center right", "right":
		return location{h: 1, v: 0}, nil
	case "lower center":
		return location{h: 0, v: 1}, nil
	case "upper center":
		return location{h: 0, v: -1}, nil
	case "center":
		return location{h: 0, v: 0}, nil
	}
	return location{}, fmt.Errorf("%w: location %q", ErrInvalidOption, s)
}
