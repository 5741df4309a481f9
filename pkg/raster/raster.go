// Package raster defines the single-channel pixel buffer used throughout the
// GlyphForge engine, together with the canonical ink/background convention.
//
// # Pixel Convention
//
// Every raster is an 8-bit, one-channel grid where 0 is ink (foreground) and
// 255 is background. The one and only classification predicate is [IsInk]:
// a sample is ink iff it is below 128. No other package may re-derive this
// threshold; historical inverted-ink defects trace back to exactly that kind
// of duplication.
//
// # Ownership
//
// Rasters are plain value buffers with no hidden sharing. Clone always
// returns an independent copy; the capsule layer is responsible for
// exclusive ownership and release.
package raster

import (
	"image"

	"github.com/glyphforge/glyphforge/pkg/errors"
)

// Ink and Background are the canonical sample values for binary rasters.
const (
	Ink        uint8 = 0
	Background uint8 = 255
)

// IsInk reports whether a sample value is classified as ink.
// This is the single source of truth for binary classification.
func IsInk(v uint8) bool {
	return v < 128
}

// Raster is a rectangular single-channel 8-bit pixel buffer in row-major
// order. The zero value is not usable; use New.
type Raster struct {
	width  int
	height int
	data   []uint8
}

// New creates a background-filled raster with the given dimensions.
// Non-positive dimensions fail with INVALID_DIMENSIONS; they are never
// clamped.
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"width and height must be positive, got %dx%d", width, height)
	}
	data := make([]uint8, width*height)
	for i := range data {
		data[i] = Background
	}
	return &Raster{width: width, height: height, data: data}, nil
}

// Width returns the width of the raster in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height of the raster in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Data returns the raw samples in row-major order.
// The slice aliases the raster's buffer; callers must not retain it past the
// owning capsule's lifetime.
func (r *Raster) Data() []uint8 {
	return r.data
}

// At returns the sample at (x, y). Out-of-bounds coordinates return
// Background, matching the algorithmic convention that everything outside
// the grid is background.
func (r *Raster) At(x, y int) uint8 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Background
	}
	return r.data[y*r.width+x]
}

// Set writes the sample at (x, y). Out-of-bounds writes are ignored.
func (r *Raster) Set(x, y int, v uint8) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.data[y*r.width+x] = v
}

// Clone returns an independent deep copy of the raster.
func (r *Raster) Clone() *Raster {
	data := make([]uint8, len(r.data))
	copy(data, r.data)
	return &Raster{width: r.width, height: r.height, data: data}
}

// Binarize returns a copy where every sample is collapsed to Ink or
// Background according to IsInk. The receiver is not modified.
func (r *Raster) Binarize() *Raster {
	out := r.Clone()
	for i, v := range out.data {
		if IsInk(v) {
			out.data[i] = Ink
		} else {
			out.data[i] = Background
		}
	}
	return out
}

// InkCount returns the number of samples classified as ink.
func (r *Raster) InkCount() int {
	n := 0
	for _, v := range r.data {
		if IsInk(v) {
			n++
		}
	}
	return n
}

// IsBinary reports whether every sample is exactly Ink or Background.
func (r *Raster) IsBinary() bool {
	for _, v := range r.data {
		if v != Ink && v != Background {
			return false
		}
	}
	return true
}

// ToGray converts the raster to an image.Gray sharing no memory with the
// raster.
func (r *Raster) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.data)
	return img
}

// FromGray creates a raster from an image.Gray. The image stride is
// normalized away so the raster's buffer is exactly width*height samples.
func FromGray(img *image.Gray) (*Raster, error) {
	bounds := img.Bounds()
	out, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < out.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+out.width]
		copy(out.data[y*out.width:(y+1)*out.width], row)
	}
	return out, nil
}

// FromImage creates a raster from an arbitrary image by converting each
// pixel to its grayscale luminance.
func FromImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	out, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	for y := 0; y < out.height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+out.width]
		copy(out.data[y*out.width:(y+1)*out.width], row)
	}
	return out, nil
}
