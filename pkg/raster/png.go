package raster

import (
	"bytes"
	"image/png"
	"io"

	"github.com/glyphforge/glyphforge/pkg/errors"
)

// EncodePNG writes the raster to w as a grayscale PNG.
func EncodePNG(w io.Writer, r *Raster) error {
	if r == nil {
		return errors.New(errors.ErrCodeMissingInput, "raster is nil")
	}
	if err := png.Encode(w, r.ToGray()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// EncodePNGBytes encodes the raster as a grayscale PNG byte slice.
func EncodePNGBytes(r *Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePNG reads a PNG from r and converts it to a single-channel raster.
// Non-grayscale images are converted by luminance.
func DecodePNG(rd io.Reader) (*Raster, error) {
	img, err := png.Decode(rd)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode png")
	}
	return FromImage(img)
}
