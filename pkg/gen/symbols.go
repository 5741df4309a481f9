package gen

import (
	"math"
	"math/rand"

	"github.com/glyphforge/glyphforge/pkg/raster"
)

// Notehead renders a filled, slightly tilted ellipse. The seed jitters the
// ellipse axes by a few percent so training sets are not byte-identical
// across seeds.
type Notehead struct{}

func (*Notehead) Kind() string { return "notehead" }

func (*Notehead) Generate(dims Dimensions, seed int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	jx := 1 + (rng.Float64()-0.5)*0.08
	jy := 1 + (rng.Float64()-0.5)*0.08

	cx := float64(dims.Width) / 2
	cy := float64(dims.Height) / 2
	rx := float64(dims.Width) * 0.38 * jx
	ry := float64(dims.Height) * 0.30 * jy
	fillEllipse(r, cx, cy, rx, ry)
	return r, nil
}

// Stem renders a vertical bar one tenth of the width, full glyph height
// minus a margin.
type Stem struct{}

func (*Stem) Kind() string { return "stem" }

func (*Stem) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	thickness := max(1, dims.Width/10)
	x0 := (dims.Width - thickness) / 2
	fillRect(r, x0, dims.Height/10, x0+thickness, dims.Height-dims.Height/10)
	return r, nil
}

// Flag renders a stem with a triangular flag attached at the top right.
type Flag struct{}

func (*Flag) Kind() string { return "flag" }

func (*Flag) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	thickness := max(1, dims.Width/10)
	x0 := dims.Width / 4
	top := dims.Height / 10
	fillRect(r, x0, top, x0+thickness, dims.Height-dims.Height/10)

	// Triangle sloping down-right from the stem top.
	span := dims.Height / 3
	for dy := 0; dy < span; dy++ {
		reach := (dims.Width/2)*(span-dy)/span + thickness
		fillRect(r, x0+thickness, top+dy, min(x0+reach, dims.Width-1), top+dy+1)
	}
	return r, nil
}

// Sharp renders the classic two-vertical, two-slanted-horizontal grid.
type Sharp struct{}

func (*Sharp) Kind() string { return "sharp" }

func (*Sharp) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	vt := max(1, dims.Width/12)
	ht := max(1, dims.Height/12)
	mTop, mBot := dims.Height/8, dims.Height-dims.Height/8

	// Verticals at 1/3 and 2/3.
	fillRect(r, dims.Width/3-vt/2, mTop, dims.Width/3+vt/2+1, mBot)
	fillRect(r, 2*dims.Width/3-vt/2, mTop, 2*dims.Width/3+vt/2+1, mBot)

	// Slanted horizontals: rise one eighth of height across the glyph.
	rise := dims.Height / 8
	for _, yc := range []int{dims.Height * 3 / 8, dims.Height * 5 / 8} {
		for x := dims.Width / 8; x < dims.Width-dims.Width/8; x++ {
			y := yc - rise*(x-dims.Width/8)/max(1, dims.Width*3/4)
			fillRect(r, x, y-ht/2, x+1, y+ht/2+1)
		}
	}
	return r, nil
}

// Flat renders a vertical bar with a bowl on its lower right.
type Flat struct{}

func (*Flat) Kind() string { return "flat" }

func (*Flat) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	thickness := max(1, dims.Width/10)
	x0 := dims.Width / 4
	fillRect(r, x0, dims.Height/10, x0+thickness, dims.Height-dims.Height/6)

	// Bowl: half-ellipse hanging off the bar's lower half.
	cx := float64(x0 + thickness)
	cy := float64(dims.Height) * 0.68
	fillHalfEllipse(r, cx, cy, float64(dims.Width)*0.28, float64(dims.Height)*0.16)
	return r, nil
}

// Natural renders two offset verticals joined by two horizontals.
type Natural struct{}

func (*Natural) Kind() string { return "natural" }

func (*Natural) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	vt := max(1, dims.Width/12)
	ht := max(1, dims.Height/12)
	left := dims.Width / 3
	right := 2 * dims.Width / 3

	fillRect(r, left-vt/2, dims.Height/8, left+vt/2+1, dims.Height*3/4)
	fillRect(r, right-vt/2, dims.Height/4, right+vt/2+1, dims.Height-dims.Height/8)
	fillRect(r, left, dims.Height*3/8-ht/2, right+vt/2+1, dims.Height*3/8+ht/2+1)
	fillRect(r, left-vt/2, dims.Height*5/8-ht/2, right, dims.Height*5/8+ht/2+1)
	return r, nil
}

// QuarterRest renders a stylized zigzag of thick diagonal strokes.
type QuarterRest struct{}

func (*QuarterRest) Kind() string { return "quarter-rest" }

func (*QuarterRest) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	thickness := max(1, dims.Width/8)
	x1, x2 := dims.Width/3, 2*dims.Width/3
	y := dims.Height / 8
	segment := dims.Height / 4

	thickLine(r, x1, y, x2, y+segment, thickness)
	thickLine(r, x2, y+segment, x1, y+2*segment, thickness)
	thickLine(r, x1, y+2*segment, x2, y+3*segment, thickness)
	return r, nil
}

// Barline renders a thin and a thick full-height vertical, as at a final
// barline.
type Barline struct{}

func (*Barline) Kind() string { return "barline" }

func (*Barline) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	thin := max(1, dims.Width/16)
	thick := max(1, dims.Width/6)
	fillRect(r, dims.Width/3, 0, dims.Width/3+thin, dims.Height)
	fillRect(r, 2*dims.Width/3-thick, 0, 2*dims.Width/3, dims.Height)
	return r, nil
}

// Clef renders a simplified treble clef: a full-height spine with a bowl
// wrapped around its lower third and a small terminal ball at the bottom.
type Clef struct{}

func (*Clef) Kind() string { return "clef" }

func (*Clef) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	thickness := max(1, dims.Width/10)
	cx := dims.Width / 2
	fillRect(r, cx-thickness/2, dims.Height/12, cx+thickness/2+1, dims.Height-dims.Height/8)

	// Bowl around the lower third of the spine.
	fillHalfEllipse(r, float64(cx), float64(dims.Height)*0.62,
		float64(dims.Width)*0.30, float64(dims.Height)*0.18)

	// Terminal ball at the spine's foot, offset left.
	ball := math.Max(1, math.Min(float64(dims.Width), float64(dims.Height))*0.10)
	fillEllipse(r, float64(cx)-float64(dims.Width)*0.18, float64(dims.Height)*0.85, ball, ball)
	return r, nil
}

// AugmentationDot renders a small filled circle right of center.
type AugmentationDot struct{}

func (*AugmentationDot) Kind() string { return "dot" }

func (*AugmentationDot) Generate(dims Dimensions, _ int64) (*raster.Raster, error) {
	r, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	radius := math.Max(1, math.Min(float64(dims.Width), float64(dims.Height))*0.18)
	fillEllipse(r, float64(dims.Width)*0.6, float64(dims.Height)/2, radius, radius)
	return r, nil
}

// fillEllipse fills the ellipse centered at (cx, cy) with radii (rx, ry).
func fillEllipse(r *raster.Raster, cx, cy, rx, ry float64) {
	if rx < 1 {
		rx = 1
	}
	if ry < 1 {
		ry = 1
	}
	for y := int(cy - ry); y <= int(cy+ry); y++ {
		for x := int(cx - rx); x <= int(cx+rx); x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				r.Set(x, y, raster.Ink)
			}
		}
	}
}

// fillHalfEllipse fills the right half of an ellipse.
func fillHalfEllipse(r *raster.Raster, cx, cy, rx, ry float64) {
	for y := int(cy - ry); y <= int(cy+ry); y++ {
		for x := int(cx); x <= int(cx+rx); x++ {
			dx := (float64(x) - cx) / math.Max(rx, 1)
			dy := (float64(y) - cy) / math.Max(ry, 1)
			if dx*dx+dy*dy <= 1 {
				r.Set(x, y, raster.Ink)
			}
		}
	}
}

// fillRect fills the half-open rectangle [x0, x1) x [y0, y1).
func fillRect(r *raster.Raster, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.Set(x, y, raster.Ink)
		}
	}
}

// thickLine draws a line of roughly the given thickness by stamping squares
// along the segment.
func thickLine(r *raster.Raster, x0, y0, x1, y1, thickness int) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		steps = 1
	}
	half := thickness / 2
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		fillRect(r, x-half, y-half, x+half+1, y+half+1)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
