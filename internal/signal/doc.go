// Package signal models the host-side containers the image plugin reads into
// and writes from.
//
// # Arrays
//
// An Array is a dense row-major block of unsigned samples. Colour images are
// kept either as a plain (height, width, channel) array or in packed form,
// where the channel dimension is folded into a single rgb8/rgba8/rgb16/rgba16
// element per pixel. RegularToRGBX and RGBXToRegular convert between the two.
// Set saturates at the dtype's maximum.
//
// # Axes
//
// A Signal couples data with an AxesManager. Axes are split into signal axes
// (what varies within one measurement) and navigation axes (what varies across
// measurements). For a (height, width) image the first signal axis is the
// width ("x") and the second the height ("y"). Each axis carries a scale and
// units; an axis converted to explicit values is non-uniform.
//
// # Lazy Data
//
// Data may be materialised (*Array) or lazy (*Deferred). A Deferred declares
// its shape and dtype up front and runs its thunk once, on first Compute:
//
//	d := signal.NewDeferred([]int{480, 640}, signal.Uint8, load)
//	sig, _ := signal.NewSignal2D(d)
//	arr, err := sig.Data.Compute() // load runs here
package signal
