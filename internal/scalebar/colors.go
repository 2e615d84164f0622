package scalebar

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Single-letter and basic colour names.
var namedColors = map[string]string{
	"k":       "#000000",
	"black":   "#000000",
	"w":       "#ffffff",
	"white":   "#ffffff",
	"r":       "#ff0000",
	"red":     "#ff0000",
	"g":       "#008000",
	"green":   "#008000",
	"b":       "#0000ff",
	"blue":    "#0000ff",
	"c":       "#00bfbf",
	"cyan":    "#00ffff",
	"m":       "#bf00bf",
	"magenta": "#ff00ff",
	"y":       "#bfbf00",
	"yellow":  "#ffff00",
	"gray":    "#808080",
	"grey":    "#808080",
}

// parseColor accepts a colour name, "#RRGGBB" or "#RRGGBBAA". The leading
// "#" is optional.
func parseColor(s string) (color.NRGBA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[str]; ok {
		str = hex
	}
	if !strings.HasPrefix(str, "#") {
		str = "#" + str
	}

	alpha := uint8(255)
	if len(str) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(str[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrInvalidOption, s)
		}
		alpha = a
		str = str[:7]
	}

	c, err := colorful.Hex(str)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrInvalidOption, s)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
