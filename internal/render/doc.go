// Package render rasterises arrays into an off-screen figure and exports it.
//
// # Figures
//
// A Figure is sized in inches at a fixed density, so a 5.12 in figure at
// DefaultDPI is 512 pixels wide. The canvas starts white. Imshow fills it with
// the data, with no ticks and no frame, and reports the rectangle the image
// landed in. Overlay geometry such as a scale bar is computed against that
// rectangle, not the whole canvas.
//
// # Export
//
// Savefig writes the canvas in one of SupportedFiletypes, chosen by file
// extension: PNG and JPEG through bild's imgio encoders, TIFF through
// x/image/tiff with deflate compression. Other extensions fail with
// ErrUnsupportedFiletype.
//
// # Usage
//
//	fig, err := render.NewFigure(8, 6, render.DefaultDPI) // 800x600 px
//	if err != nil {
//	    return err
//	}
//	if _, err := fig.Imshow(arr); err != nil {
//	    return err
//	}
//	err = fig.Savefig("out.png", render.SaveOptions{})
package render
