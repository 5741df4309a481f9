package validate

import "github.com/glyphforge/glyphforge/pkg/raster"

// Validator names, stable across releases because override maps and audit
// records key on them.
const (
	DensityName   = "Density Validator"
	ContrastName  = "Contrast Validator"
	StructureName = "Structure Validator"
)

// Default density thresholds (ratio of ink pixels to total).
const (
	DefaultMinDensity = 0.05
	DefaultMaxDensity = 0.12
)

// Density checks that the ink ratio falls inside [Min, Max] inclusive.
// It always records the measured density and its status on the shared
// metrics, even when the check fails.
type Density struct {
	Min float64
	Max float64
}

// NewDensity builds a density validator with the given inclusive bounds.
// Non-positive bounds fall back to the defaults.
func NewDensity(minDensity, maxDensity float64) *Density {
	if minDensity <= 0 {
		minDensity = DefaultMinDensity
	}
	if maxDensity <= 0 {
		maxDensity = DefaultMaxDensity
	}
	return &Density{Min: minDensity, Max: maxDensity}
}

// Name implements Validator.
func (*Density) Name() string { return DensityName }

// Validate implements Validator.
func (d *Density) Validate(r *raster.Raster, m *Metrics) Result {
	if r == nil {
		return fail(DensityName, "no raster to validate")
	}

	total := r.Width() * r.Height()
	if total == 0 {
		return fail(DensityName, "raster has zero pixels")
	}

	ink := r.InkCount()
	ratio := float64(ink) / float64(total)
	if m != nil {
		m.Density = ratio * 100
	}

	// Dedicated fast path: an all-background raster is always too sparse.
	if ink == 0 {
		if m != nil {
			m.Status = DensityTooLow
		}
		return fail(DensityName, "raster contains no ink pixels")
	}

	switch {
	case ratio < d.Min:
		if m != nil {
			m.Status = DensityTooLow
		}
		return fail(DensityName, "ink density %.2f%% below minimum %.2f%%", ratio*100, d.Min*100)
	case ratio > d.Max:
		if m != nil {
			m.Status = DensityTooHigh
		}
		return fail(DensityName, "ink density %.2f%% above maximum %.2f%%", ratio*100, d.Max*100)
	default:
		if m != nil {
			m.Status = DensityValid
		}
		return pass(DensityName)
	}
}

// Contrast requires both a dark and a light population: each class must
// cover at least 10% of the raster. A single-color image fails.
type Contrast struct{}

// minClassRatio is the minimum share each of the dark and light classes
// must hold.
const minClassRatio = 0.10

// Name implements Validator.
func (*Contrast) Name() string { return ContrastName }

// Validate implements Validator.
func (*Contrast) Validate(r *raster.Raster, _ *Metrics) Result {
	if r == nil {
		return fail(ContrastName, "no raster to validate")
	}

	total := r.Width() * r.Height()
	if total == 0 {
		return fail(ContrastName, "raster has zero pixels")
	}

	dark := r.InkCount()
	darkRatio := float64(dark) / float64(total)
	lightRatio := 1 - darkRatio

	if darkRatio < minClassRatio {
		return fail(ContrastName, "dark ratio %.2f%% below %.0f%%", darkRatio*100, minClassRatio*100)
	}
	if lightRatio < minClassRatio {
		return fail(ContrastName, "light ratio %.2f%% below %.0f%%", lightRatio*100, minClassRatio*100)
	}
	return pass(ContrastName)
}

// Structure is an extension point for topological checks. It currently
// rejects only a missing raster.
//
// A previous center-pixel heuristic was removed because it rejected
// intentionally hollow glyphs; do not reintroduce one without semantics
// that account for hollow shapes.
type Structure struct{}

// Name implements Validator.
func (*Structure) Name() string { return StructureName }

// Validate implements Validator.
func (*Structure) Validate(r *raster.Raster, _ *Metrics) Result {
	if r == nil {
		return fail(StructureName, "no raster to validate")
	}
	return pass(StructureName)
}
