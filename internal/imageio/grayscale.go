package imageio

import "github.com/ironsheep/image-signal-io/internal/signal"

// CollapseGrayscale normalises a decoded multi-channel array.
//
// When channel 1 equals channel 2 at every pixel the image is treated as
// gray and only channel 0 is kept. Channel 0 is not compared. Any other
// multi-channel array is packed into one RGB(A) value per pixel. Arrays with
// two or fewer dimensions, and arrays that cannot be packed, are returned
// unchanged.
func CollapseGrayscale(a *signal.Array) *signal.Array {
	shape := a.Shape()
	if len(shape) != 3 || shape[2] < 3 {
		return a
	}
	h, w, c := shape[0], shape[1], shape[2]
	data := a.Data()

	gray := true
	for i := 0; i < h*w; i++ {
		if data[i*c+1] != data[i*c+2] {
			gray = false
			break
		}
	}

	if gray {
		out := signal.NewArray(a.DType().Base(), h, w)
		od := out.Data()
		for i := range od {
			od[i] = data[i*c]
		}
		return out
	}

	packed, err := signal.RegularToRGBX(a)
	if err != nil {
		return a
	}
	return packed
}
