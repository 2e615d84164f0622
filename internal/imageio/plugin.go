package imageio

import "strings"

// Dimensions is a (signal, navigation) dimensionality pair.
type Dimensions struct {
	Signal     int `json:"signal"`
	Navigation int `json:"navigation"`
}

// Descriptor declares what a format plugin can do.
type Descriptor struct {
	FormatName       string       `json:"format_name"`
	Description      string       `json:"description"`
	FullSupport      bool         `json:"full_support"`
	FileExtensions   []string     `json:"file_extensions"`
	DefaultExtension string       `json:"default_extension"`
	Writes           []Dimensions `json:"writes"`
	NonUniformAxis   bool         `json:"non_uniform_axis"`
}

// Plugin is the descriptor of this package's image format plugin.
var Plugin = Descriptor{
	FormatName:  "Signal2D",
	Description: "Import/Export standard image formats.",
	FullSupport: false,
	FileExtensions: []string{
		"png", "bmp", "dib", "gif", "jpeg", "jpe", "jpg",
		"msp", "pcx", "ppm", "pbm", "pgm", "xbm", "spi",
	},
	DefaultExtension: "png",
	Writes:           []Dimensions{{Signal: 2, Navigation: 0}},
	NonUniformAxis:   false,
}

// HasExtension reports whether ext, with or without its leading dot, is
// one of the plugin's file extensions. Matching ignores case.
func (d Descriptor) HasExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range d.FileExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// CanWrite reports whether a signal of the given dimensions can be written.
func (d Descriptor) CanWrite(dims Dimensions) bool {
	for _, w := range d.Writes {
		if w == dims {
			return true
		}
	}
	return false
}
