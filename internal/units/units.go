// Package units parses the physical unit strings carried by axis calibrations.
//
// Only what the scale bar needs is modelled: a unit's dimension (length,
// reciprocal length, pixel, or something else) and its factor relative to the
// dimension's base unit (metre, 1/metre, pixel).
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUndefinedUnit is returned for unit strings that cannot be parsed.
var ErrUndefinedUnit = errors.New("units: undefined unit")

// Dimension classifies a unit.
type Dimension int

const (
	Other Dimension = iota
	Length
	ReciprocalLength
	Pixel
)

func (d Dimension) String() string {
	switch d {
	case Length:
		return "[length]"
	case ReciprocalLength:
		return "1/[length]"
	case Pixel:
		return "[pixel]"
	}
	return "[other]"
}

// Unit is a parsed unit string.
type Unit struct {
	Symbol string
	Dim    Dimension
	// Factor converts one of this unit into the dimension's base unit.
	Factor float64
}

// IsLength reports whether u measures a length.
func (u Unit) IsLength() bool { return u.Dim == Length }

// IsReciprocalLength reports whether u is expressible as 1/[length].
func (u Unit) IsReciprocalLength() bool { return u.Dim == ReciprocalLength }

// IsPixel reports whether u counts pixels.
func (u Unit) IsPixel() bool { return u.Dim == Pixel }

type base struct {
	dim    Dimension
	factor float64
}

var bases = map[string]base{
	"m":   {Length, 1},
	"px":  {Pixel, 1},
	"s":   {Other, 1},
	"eV":  {Other, 1},
	"Hz":  {Other, 1},
	"rad": {Other, 1},
}

var aliases = map[string]base{
	"\u00c5":     {Length, 1e-10},
	"\u212b":     {Length, 1e-10},
	"angstrom":   {Length, 1e-10},
	"micron":     {Length, 1e-6},
	"meter":      {Length, 1},
	"metre":      {Length, 1},
	"kilometer":  {Length, 1e3},
	"centimeter": {Length, 1e-2},
	"millimeter": {Length, 1e-3},
	"micrometer": {Length, 1e-6},
	"nanometer":  {Length, 1e-9},
	"picometer":  {Length, 1e-12},
	"pixel":      {Pixel, 1},
	"pixels":     {Pixel, 1},
	"second":     {Other, 1},
	"deg":        {Other, 1},
	"degree":     {Other, 1},
}

var prefixes = []struct {
	symbol string
	factor float64
}{
	// "da" must be tried before "d".
	{"da", 1e1},
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3},
	{"\u00b5", 1e-6}, {"\u03bc", 1e-6}, {"u", 1e-6},
	{"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21}, {"y", 1e-24},
}

// Parse interprets s as a unit. Reciprocal forms "1/X", "X^-1", "X**-1" and
// "X⁻¹" are accepted for any X that parses on its own.
func Parse(s string) (Unit, error) {
	str := strings.Join(strings.Fields(s), "")
	if str == "" {
		return Unit{}, fmt.Errorf("%w: empty unit", ErrUndefinedUnit)
	}

	if inner, ok := reciprocalOf(str); ok {
		u, err := parseSimple(inner)
		if err != nil {
			return Unit{}, fmt.Errorf("%w: %q", ErrUndefinedUnit, s)
		}
		dim := Other
		switch u.Dim {
		case Length:
			dim = ReciprocalLength
		case ReciprocalLength:
			dim = Length
		}
		return Unit{Symbol: str, Dim: dim, Factor: 1 / u.Factor}, nil
	}

	u, err := parseSimple(str)
	if err != nil {
		return Unit{}, fmt.Errorf("%w: %q", ErrUndefinedUnit, s)
	}
	return u, nil
}

func reciprocalOf(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "1/"); ok {
		return rest, true
	}
	for _, suffix := range []string{"^-1", "**-1", "⁻¹"} {
		if rest, ok := strings.CutSuffix(s, suffix); ok {
			return rest, true
		}
	}
	return "", false
}

func parseSimple(s string) (Unit, error) {
	if b, ok := bases[s]; ok {
		return Unit{Symbol: s, Dim: b.dim, Factor: b.factor}, nil
	}
	if b, ok := aliases[s]; ok {
		return Unit{Symbol: s, Dim: b.dim, Factor: b.factor}, nil
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(s, p.symbol)
		if !ok {
			continue
		}
		if b, ok := bases[rest]; ok {
			return Unit{Symbol: s, Dim: b.dim, Factor: p.factor * b.factor}, nil
		}
	}
	return Unit{}, ErrUndefinedUnit
}
