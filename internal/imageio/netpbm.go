package imageio

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/spakin/netpbm"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// netpbmFormats are the registered extensions written by the Netpbm
// encoder rather than the imaging codec.
var netpbmFormats = map[string]netpbm.Format{
	"pbm": netpbm.PBM,
	"pgm": netpbm.PGM,
	"ppm": netpbm.PPM,
}

func init() {
	// Raw and plain variants of the three formats. Registering here makes
	// them readable through image.Decode, and so through imaging.Open.
	for _, magic := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
		image.RegisterFormat("netpbm", magic, decodeNetpbm, netpbm.DecodeConfig)
	}
}

func decodeNetpbm(r io.Reader) (image.Image, error) {
	return netpbm.Decode(r, &netpbm.DecodeOptions{})
}

// netpbmMaxValue returns the sample ceiling to encode img with.
func netpbmMaxValue(img image.Image, format netpbm.Format) uint16 {
	if format == netpbm.PBM {
		return 1
	}
	switch img.(type) {
	case *image.Gray16, *image.NRGBA64:
		return 0xffff
	}
	return 0xff
}

// netpbmOptions translates direct-write params into encoder options.
// Recognised: plain.
func netpbmOptions(img image.Image, format netpbm.Format, params Params, logger *zap.Logger) (*netpbm.EncodeOptions, error) {
	opts := &netpbm.EncodeOptions{
		Format:   format,
		MaxValue: netpbmMaxValue(img, format),
	}
	for _, key := range params.Keys() {
		switch key {
		case "plain":
			on, ok, err := params.Bool(key)
			if err != nil {
				return nil, err
			}
			opts.Plain = ok && on
		default:
			logger.Debug("ignoring unknown write parameter",
				zap.String("param", key),
				zap.String("format", "netpbm"))
		}
	}
	return opts, nil
}

// writeNetpbm encodes img to filename as a PBM, PGM or PPM file.
func writeNetpbm(filename string, img image.Image, format netpbm.Format, params Params, logger *zap.Logger) (err error) {
	opts, err := netpbmOptions(img, format, params, logger)
	if err != nil {
		return err
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	if err := netpbm.Encode(out, img, opts); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return nil
}
