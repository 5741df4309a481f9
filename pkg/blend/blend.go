// Package blend implements the pure per-pixel compositing formulas used by
// the morph engine.
//
// All six operations take two equal-dimension rasters and allocate a fresh
// output; inputs are never mutated. Mismatched dimensions fail with
// DIMENSION_MISMATCH, nil inputs with MISSING_INPUT, and factors outside
// [0, 1] with OUT_OF_RANGE.
package blend

import (
	"math"
	"strings"

	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/raster"
)

// Mode identifies a blend formula.
type Mode string

// Supported blend modes.
const (
	ModeLinear   Mode = "linear"
	ModeAlpha    Mode = "alpha"
	ModeAdditive Mode = "additive"
	ModeMultiply Mode = "multiply"
	ModeScreen   Mode = "screen"
	ModeOverlay  Mode = "overlay"
)

// ParseMode parses a blend mode name (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeLinear, ModeAlpha, ModeAdditive, ModeMultiply, ModeScreen, ModeOverlay:
		return Mode(strings.ToLower(s)), nil
	}
	return "", errors.New(errors.ErrCodeInvalidRequest,
		"invalid blend mode: %q (must be one of: linear, alpha, additive, multiply, screen, overlay)", s)
}

// Apply dispatches to the formula for mode. Linear and alpha consume factor;
// the remaining modes ignore it.
func Apply(mode Mode, a, b *raster.Raster, factor float64) (*raster.Raster, error) {
	switch mode {
	case ModeLinear:
		return Linear(a, b, factor)
	case ModeAlpha:
		return Alpha(a, b, factor)
	case ModeAdditive:
		return Additive(a, b)
	case ModeMultiply:
		return Multiply(a, b)
	case ModeScreen:
		return Screen(a, b)
	case ModeOverlay:
		return Overlay(a, b)
	}
	return nil, errors.New(errors.ErrCodeInvalidRequest, "invalid blend mode: %q", mode)
}

// Linear interpolates from → to by factor: from*(1-factor) + to*factor,
// rounded and clamped to [0, 255].
func Linear(from, to *raster.Raster, factor float64) (*raster.Raster, error) {
	if err := checkFactor(factor, "factor"); err != nil {
		return nil, err
	}
	return combine(from, to, func(f, t uint8) uint8 {
		return clampRound(float64(f)*(1-factor) + float64(t)*factor)
	})
}

// Alpha composites fg over bg with the given alpha: fg*alpha + bg*(1-alpha).
func Alpha(bg, fg *raster.Raster, alpha float64) (*raster.Raster, error) {
	if err := checkFactor(alpha, "alpha"); err != nil {
		return nil, err
	}
	return combine(bg, fg, func(b, f uint8) uint8 {
		return clampRound(float64(f)*alpha + float64(b)*(1-alpha))
	})
}

// Additive adds the two rasters, clipping at 255.
func Additive(base, add *raster.Raster) (*raster.Raster, error) {
	return combine(base, add, func(b, a uint8) uint8 {
		sum := int(b) + int(a)
		if sum > 255 {
			return 255
		}
		return uint8(sum)
	})
}

// Multiply multiplies the two rasters with truncating integer division:
// (base*m) / 255.
func Multiply(base, m *raster.Raster) (*raster.Raster, error) {
	return combine(base, m, func(b, mv uint8) uint8 {
		return uint8(int(b) * int(mv) / 255)
	})
}

// Screen inverts, multiplies, and inverts again:
// 255 - ((255-base)*(255-s))/255.
func Screen(base, s *raster.Raster) (*raster.Raster, error) {
	return combine(base, s, func(b, sv uint8) uint8 {
		return uint8(255 - (255-int(b))*(255-int(sv))/255)
	})
}

// Overlay multiplies dark bases and screens light ones. The 128 split
// deliberately matches the canonical ink threshold.
func Overlay(base, ov *raster.Raster) (*raster.Raster, error) {
	return combine(base, ov, func(b, o uint8) uint8 {
		var v int
		if raster.IsInk(b) {
			v = 2 * int(b) * int(o) / 255
		} else {
			v = 255 - 2*(255-int(b))*(255-int(o))/255
		}
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	})
}

// combine validates the input pair and applies op per sample.
func combine(a, b *raster.Raster, op func(av, bv uint8) uint8) (*raster.Raster, error) {
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeMissingInput, "blend inputs must not be nil")
	}
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"blend inputs must have equal dimensions, got %dx%d and %dx%d",
			a.Width(), a.Height(), b.Width(), b.Height())
	}

	out := a.Clone()
	od, bd := out.Data(), b.Data()
	for i := range od {
		od[i] = op(od[i], bd[i])
	}
	return out, nil
}

func checkFactor(f float64, name string) error {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return errors.New(errors.ErrCodeOutOfRange, "%s must be in [0, 1], got %v", name, f)
	}
	return nil
}

func clampRound(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
