// Package skeleton implements Zhang-Suen thinning, reducing a filled shape
// to a 1-pixel-wide centerline while preserving topology.
//
// The algorithm operates on rasters following the canonical ink/background
// convention from pkg/raster. Only interior pixels are scanned or modified;
// the outermost ring of the image is treated as permanently background.
//
// # Algorithm
//
// Each round runs two sub-passes over every interior ink pixel. For a pixel
// under inspection, the eight neighbors are labeled p2 through p9 clockwise
// starting at north:
//
//	p9 p2 p3
//	p8  *  p4
//	p7 p6 p5
//
// B is the number of ink neighbors; A is the number of background→ink
// transitions in the ordered ring (p2,p3),(p3,p4),...,(p9,p2). Sub-pass 1
// removes a pixel iff A == 1, 2 ≤ B ≤ 6, at least one of {p2,p4,p6} is
// background, and at least one of {p4,p6,p8} is background. Sub-pass 2 uses
// the subsets {p2,p4,p8} and {p2,p6,p8}. Marks from a sub-pass are applied
// only after its full scan completes. Rounds repeat until neither sub-pass
// removes a pixel.
//
// # Edge Cases
//
// An all-background image converges immediately. A single isolated ink pixel
// survives (B = 0 is outside [2,6]). A straight 1-pixel-wide line is already
// a fixed point, so thinning is idempotent on its own output.
package skeleton

import "github.com/glyphforge/glyphforge/pkg/raster"

// Thin returns the Zhang-Suen skeleton of src. The input is never mutated;
// the output is a fresh strictly binary raster.
func Thin(src *raster.Raster) *raster.Raster {
	out := src.Binarize()

	for {
		removed := subPass(out, 1)
		removed += subPass(out, 2)
		if removed == 0 {
			return out
		}
	}
}

// subPass scans all interior ink pixels, collects removal marks for the
// given sub-pass, applies them simultaneously, and returns the number of
// pixels removed. Mutating while scanning would corrupt the neighbor counts
// of later pixels, so marks are strictly deferred.
func subPass(r *raster.Raster, pass int) int {
	w, h := r.Width(), r.Height()
	var marks [][2]int

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !raster.IsInk(r.At(x, y)) {
				continue
			}

			// Neighbors p2..p9, clockwise from north.
			p := [8]bool{
				raster.IsInk(r.At(x, y-1)),   // p2
				raster.IsInk(r.At(x+1, y-1)), // p3
				raster.IsInk(r.At(x+1, y)),   // p4
				raster.IsInk(r.At(x+1, y+1)), // p5
				raster.IsInk(r.At(x, y+1)),   // p6
				raster.IsInk(r.At(x-1, y+1)), // p7
				raster.IsInk(r.At(x-1, y)),   // p8
				raster.IsInk(r.At(x-1, y-1)), // p9
			}

			b := 0
			for _, ink := range p {
				if ink {
					b++
				}
			}
			if b < 2 || b > 6 {
				continue
			}

			a := 0
			for i := 0; i < 8; i++ {
				if !p[i] && p[(i+1)%8] {
					a++
				}
			}
			if a != 1 {
				continue
			}

			p2, p4, p6, p8 := p[0], p[2], p[4], p[6]
			var ok bool
			if pass == 1 {
				ok = (!p2 || !p4 || !p6) && (!p4 || !p6 || !p8)
			} else {
				ok = (!p2 || !p4 || !p8) && (!p2 || !p6 || !p8)
			}
			if ok {
				marks = append(marks, [2]int{x, y})
			}
		}
	}

	for _, m := range marks {
		r.Set(m[0], m[1], raster.Background)
	}
	return len(marks)
}
