// Package scalebar computes and draws calibrated scale bars on rendered images.
//
// # Layout
//
// Compute aims the bar at LengthFraction of the image width, picks the
// display unit (nm, µm, 1/nm, px, ...) that keeps the number at least 1, and
// rounds down to a preferred value such as 2.5, 50 or 200. The resulting
// Layout holds the box, bar and text placement in canvas pixels;
// Layout.Draw paints it. Renderer does both in one call.
//
// # Dimensions
//
// Three dimensions are understood:
//   - si-length: units must be a length ("nm", "Å", "micron")
//   - si-length-reciprocal: units must be an inverse length ("1/nm")
//   - pixel-length: units must be "px"
//
// # Options
//
// Options left at their zero value take the value from Defaults: a lower-left
// bar, black on a 75% opaque white box, one fifth of the image wide. Locations
// accept names ("upper right", "center") and the numeric codes 1 to 10.
// Colours accept single-letter names, common colour names and "#RRGGBB" or
// "#RRGGBBAA".
//
// # Usage
//
//	alpha := 0.5
//	opts := scalebar.Options{Location: "upper right", BoxAlpha: &alpha}
//	err := scalebar.Renderer{}.Draw(canvas, extent, 512, 0.25, "nm", opts)
package scalebar
