package forge

import (
	"strings"

	"github.com/glyphforge/glyphforge/pkg/blend"
	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/gen"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// OutputForm selects how far along the raw → binarized → skeletonized
// pipeline the finalized raster is taken.
type OutputForm string

// Supported output forms.
const (
	OutputRaw          OutputForm = "raw"
	OutputBinarized    OutputForm = "binarized"
	OutputSkeletonized OutputForm = "skeletonized"
)

// ParseOutputForm parses an output form name (case-insensitive).
func ParseOutputForm(s string) (OutputForm, error) {
	switch OutputForm(strings.ToLower(s)) {
	case OutputRaw, OutputBinarized, OutputSkeletonized:
		return OutputForm(strings.ToLower(s)), nil
	}
	return "", errors.New(errors.ErrCodeInvalidRequest,
		"invalid output form: %q (must be one of: raw, binarized, skeletonized)", s)
}

// EdgeCaseKind selects the transform applied to derive an edge-case variant
// from the finalized primary capsule.
type EdgeCaseKind string

// Supported edge-case kinds.
const (
	EdgeCaseRotated EdgeCaseKind = "rotated"
	EdgeCaseCropped EdgeCaseKind = "cropped"
	EdgeCaseBlurred EdgeCaseKind = "blurred"
)

// ParseEdgeCaseKind parses an edge-case kind name (case-insensitive).
func ParseEdgeCaseKind(s string) (EdgeCaseKind, error) {
	switch EdgeCaseKind(strings.ToLower(s)) {
	case EdgeCaseRotated, EdgeCaseCropped, EdgeCaseBlurred:
		return EdgeCaseKind(strings.ToLower(s)), nil
	}
	return "", errors.New(errors.ErrCodeInvalidRequest,
		"invalid edge-case kind: %q (must be one of: rotated, cropped, blurred)", s)
}

// Request describes one generation call.
// This struct supports JSON serialization for API requests.
type Request struct {
	// Kind is the symbol kind to generate.
	Kind string `json:"kind"`

	// Dimensions lists the target sizes. The first entry is the primary;
	// the rest become size variants.
	Dimensions []gen.Dimensions `json:"dimensions"`

	// Outputs selects the requested output forms. Defaults to binarized.
	Outputs []OutputForm `json:"outputs,omitempty"`

	// Seed makes stochastic generators reproducible. Advisory for
	// deterministic generators.
	Seed *int64 `json:"seed,omitempty"`

	// EdgeCases lists edge-case variants to derive from the finalized
	// primary capsule.
	EdgeCases []EdgeCaseKind `json:"edge_cases,omitempty"`

	// Overrides maps validator names to audited bypasses.
	Overrides map[string]validate.Override `json:"overrides,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (r *Request) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}

	if err := errors.ValidateSymbolKind(r.Kind); err != nil {
		return err
	}

	if len(r.Dimensions) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "at least one dimension is required")
	}
	for _, d := range r.Dimensions {
		if d.Width <= 0 || d.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidDimensions,
				"width and height must be positive, got %s", d)
		}
	}

	if len(r.Outputs) == 0 {
		r.Outputs = []OutputForm{OutputBinarized}
	}
	for _, form := range r.Outputs {
		if _, err := ParseOutputForm(string(form)); err != nil {
			return err
		}
	}

	for _, kind := range r.EdgeCases {
		if _, err := ParseEdgeCaseKind(string(kind)); err != nil {
			return err
		}
	}

	r.validated = true
	return nil
}

// wantsForm reports whether form was requested.
func (r *Request) wantsForm(form OutputForm) bool {
	for _, f := range r.Outputs {
		if f == form {
			return true
		}
	}
	return false
}

// MorphRequest describes one morph call: two named source rasters blended
// into a single capsule.
type MorphRequest struct {
	// SourceA and SourceB name rasters in the asset store.
	SourceA string `json:"source_a"`
	SourceB string `json:"source_b"`

	// Mode selects the blend formula. Defaults to linear.
	Mode blend.Mode `json:"mode,omitempty"`

	// Factor is the interpolation factor for linear and alpha blends.
	Factor float64 `json:"factor"`

	// Name overrides the derived template name.
	Name string `json:"name,omitempty"`

	// Overrides maps validator names to audited bypasses.
	Overrides map[string]validate.Override `json:"overrides,omitempty"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (r *MorphRequest) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}

	if r.SourceA == "" || r.SourceB == "" {
		return errors.New(errors.ErrCodeMissingInput, "both morph sources are required")
	}

	if r.Mode == "" {
		r.Mode = blend.ModeLinear
	}
	if _, err := blend.ParseMode(string(r.Mode)); err != nil {
		return err
	}

	if r.Name == "" {
		r.Name = "morph-" + baseName(r.SourceA) + "-" + baseName(r.SourceB)
	}
	if err := errors.ValidateName(r.Name); err != nil {
		return err
	}

	r.validated = true
	return nil
}

// baseName strips a trailing .png extension from an asset name.
func baseName(name string) string {
	return strings.TrimSuffix(name, ".png")
}
