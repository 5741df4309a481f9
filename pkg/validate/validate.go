// Package validate implements the pluggable quality-gate chain run over
// every generated or morphed raster.
//
// Validators are total functions: nil or empty input produces a failing
// Result with a descriptive message, never a panic or an error return.
// Quality failures are data, not errors — the orchestrator packages them
// into the capsule for the caller to inspect.
//
// Validators may mutate the shared [Metrics] value as a deliberate side
// channel; the density validator records the measured density and its
// status there regardless of pass/fail, and later validators may read it.
package validate

import (
	"fmt"

	"github.com/glyphforge/glyphforge/pkg/raster"
)

// DensityStatus classifies the measured ink density.
type DensityStatus int

// Density status values.
const (
	DensityUnknown DensityStatus = iota
	DensityValid
	DensityTooHigh
	DensityTooLow
)

// String returns the status name.
func (s DensityStatus) String() string {
	switch s {
	case DensityValid:
		return "valid"
	case DensityTooHigh:
		return "too-high"
	case DensityTooLow:
		return "too-low"
	default:
		return "unknown"
	}
}

// Metrics is the shared quality-metrics record for one raster. The density
// validator fills Density and DensityStatus in place.
type Metrics struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	AspectRatio float64       `json:"aspect_ratio"`
	Density     float64       `json:"density_percent"`
	Status      DensityStatus `json:"density_status"`
}

// NewMetrics builds a metrics record primed with the raster's geometry.
// A nil raster yields zeroed metrics.
func NewMetrics(r *raster.Raster) *Metrics {
	m := &Metrics{}
	if r == nil {
		return m
	}
	m.Width = r.Width()
	m.Height = r.Height()
	if r.Height() > 0 {
		m.AspectRatio = float64(r.Width()) / float64(r.Height())
	}
	return m
}

// Result is the immutable outcome of one validator run.
type Result struct {
	Valid     bool   `json:"valid"`
	Validator string `json:"validator"`
	Message   string `json:"message,omitempty"`
}

// pass and fail build results for a named validator.
func pass(name string) Result {
	return Result{Valid: true, Validator: name}
}

func fail(name, format string, args ...any) Result {
	return Result{Valid: false, Validator: name, Message: fmt.Sprintf(format, args...)}
}

// Validator is one quality check in the chain.
type Validator interface {
	// Name returns the stable validator name used in results and override
	// maps.
	Name() string

	// Validate checks the raster, optionally mutating the shared metrics.
	Validate(r *raster.Raster, m *Metrics) Result
}

// Override is an audited bypass for a named validator. When Overridden is
// true the chain skips the validator and synthesizes a passing result
// carrying the reason, so the bypass stays visible in the result list.
type Override struct {
	Overridden bool   `json:"overridden"`
	Reason     string `json:"reason"`
}

// Chain is an ordered list of validators applied in sequence.
type Chain struct {
	validators []Validator
}

// NewChain creates a chain running the given validators in order.
func NewChain(validators ...Validator) *Chain {
	return &Chain{validators: validators}
}

// DefaultChain returns the standard density → contrast → structure chain.
func DefaultChain(minDensity, maxDensity float64) *Chain {
	return NewChain(
		NewDensity(minDensity, maxDensity),
		&Contrast{},
		&Structure{},
	)
}

// Names returns the validator names in chain order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.validators))
	for i, v := range c.validators {
		names[i] = v.Name()
	}
	return names
}

// Run executes the chain against r, honoring the override map.
//
// Overridden validators are not executed; their synthesized results read
// "Overridden: {reason}" and always count as passing. Overall validity is
// the AND of every non-overridden result.
func (c *Chain) Run(r *raster.Raster, m *Metrics, overrides map[string]Override) (bool, []Result) {
	valid := true
	results := make([]Result, 0, len(c.validators))

	for _, v := range c.validators {
		if ov, ok := overrides[v.Name()]; ok && ov.Overridden {
			results = append(results, Result{
				Valid:     true,
				Validator: v.Name(),
				Message:   "Overridden: " + ov.Reason,
			})
			continue
		}

		res := v.Validate(r, m)
		results = append(results, res)
		if !res.Valid {
			valid = false
		}
	}

	return valid, results
}
