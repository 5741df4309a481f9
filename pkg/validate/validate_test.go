package validate

import (
	"strings"
	"testing"

	"github.com/glyphforge/glyphforge/pkg/raster"
)

// withInk builds a w x h raster with exactly n ink pixels.
func withInk(t *testing.T, w, h, n int) *raster.Raster {
	t.Helper()
	r, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	for i := 0; i < n; i++ {
		r.Data()[i] = raster.Ink
	}
	return r
}

func TestDensityBoundaries(t *testing.T) {
	d := NewDensity(0.05, 0.12)

	tests := []struct {
		name   string
		ink    int
		valid  bool
		status DensityStatus
	}{
		{"exactly at minimum", 500, true, DensityValid},
		{"just below minimum", 499, false, DensityTooLow},
		{"exactly at maximum", 1200, true, DensityValid},
		{"just above maximum", 1201, false, DensityTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withInk(t, 100, 100, tt.ink)
			m := NewMetrics(r)

			res := d.Validate(r, m)
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (%s)", res.Valid, tt.valid, res.Message)
			}
			if m.Status != tt.status {
				t.Errorf("Status = %v, want %v", m.Status, tt.status)
			}
			wantDensity := float64(tt.ink) / 10000 * 100
			if m.Density != wantDensity {
				t.Errorf("Density = %v, want %v", m.Density, wantDensity)
			}
		})
	}
}

func TestDensityZeroInkFastPath(t *testing.T) {
	d := NewDensity(0.05, 0.12)
	r := withInk(t, 10, 10, 0)
	m := NewMetrics(r)

	res := d.Validate(r, m)
	if res.Valid {
		t.Error("all-background raster must fail density")
	}
	if m.Status != DensityTooLow {
		t.Errorf("Status = %v, want too-low", m.Status)
	}
	if !strings.Contains(res.Message, "no ink") {
		t.Errorf("Message = %q, want zero-ink message", res.Message)
	}
}

func TestDensityNilRaster(t *testing.T) {
	d := NewDensity(0, 0)

	res := d.Validate(nil, nil)
	if res.Valid {
		t.Error("nil raster must fail, not panic")
	}
	if res.Validator != DensityName {
		t.Errorf("Validator = %q, want %q", res.Validator, DensityName)
	}
}

func TestDensityDefaults(t *testing.T) {
	d := NewDensity(0, 0)
	if d.Min != DefaultMinDensity || d.Max != DefaultMaxDensity {
		t.Errorf("defaults = [%v, %v], want [%v, %v]", d.Min, d.Max, DefaultMinDensity, DefaultMaxDensity)
	}
}

func TestContrast(t *testing.T) {
	c := &Contrast{}

	tests := []struct {
		name  string
		ink   int
		valid bool
	}{
		{"balanced", 5000, true},
		{"dark at 10%", 1000, true},
		{"dark below 10%", 999, false},
		{"light below 10%", 9001, false},
		{"all dark", 10000, false},
		{"all light", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withInk(t, 100, 100, tt.ink)
			res := c.Validate(r, nil)
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (%s)", res.Valid, tt.valid, res.Message)
			}
		})
	}
}

func TestContrastNilRaster(t *testing.T) {
	c := &Contrast{}
	if res := c.Validate(nil, nil); res.Valid {
		t.Error("nil raster must fail contrast")
	}
}

func TestStructure(t *testing.T) {
	s := &Structure{}

	// Hollow glyphs are legal: only a nil raster fails.
	hollow := withInk(t, 10, 10, 0)
	if res := s.Validate(hollow, nil); !res.Valid {
		t.Errorf("structure rejected a present raster: %s", res.Message)
	}
	if res := s.Validate(nil, nil); res.Valid {
		t.Error("nil raster must fail structure")
	}
}

func TestChainRun(t *testing.T) {
	chain := DefaultChain(0.05, 0.12)
	// 8% density: inside the density window but below the 10% dark ratio
	// the contrast validator wants.
	r := withInk(t, 100, 100, 800)

	valid, results := chain.Run(r, NewMetrics(r), nil)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if valid {
		t.Error("8% dark ratio should fail contrast")
	}

	// Per-validator outcomes
	if !results[0].Valid {
		t.Error("density should pass at 8%")
	}
	if results[1].Valid {
		t.Error("contrast should fail at 8% dark")
	}
	if !results[2].Valid {
		t.Error("structure should pass")
	}
}

func TestChainOverride(t *testing.T) {
	chain := DefaultChain(0.05, 0.12)
	r := withInk(t, 100, 100, 2000) // 20%: density too high, contrast fine

	overrides := map[string]Override{
		DensityName: {Overridden: true, Reason: "test"},
	}

	valid, results := chain.Run(r, NewMetrics(r), overrides)
	if !valid {
		t.Error("overridden density cannot cause invalidity")
	}

	var densityResult *Result
	for i := range results {
		if results[i].Validator == DensityName {
			densityResult = &results[i]
		}
	}
	if densityResult == nil {
		t.Fatal("override must still appear in the result list")
	}
	if !densityResult.Valid {
		t.Error("overridden result must be valid")
	}
	if !strings.HasPrefix(densityResult.Message, "Overridden:") {
		t.Errorf("Message = %q, want Overridden: prefix", densityResult.Message)
	}
	if !strings.Contains(densityResult.Message, "test") {
		t.Errorf("Message = %q, want reason included", densityResult.Message)
	}
}

func TestChainOverrideFalseStillRuns(t *testing.T) {
	chain := NewChain(NewDensity(0.05, 0.12))
	r := withInk(t, 100, 100, 2000)

	overrides := map[string]Override{
		DensityName: {Overridden: false, Reason: "ignored"},
	}

	valid, results := chain.Run(r, NewMetrics(r), overrides)
	if valid {
		t.Error("override with Overridden=false must not skip the validator")
	}
	if results[0].Valid {
		t.Error("density should have executed and failed")
	}
}

func TestNewMetrics(t *testing.T) {
	r := withInk(t, 40, 20, 0)
	m := NewMetrics(r)

	if m.Width != 40 || m.Height != 20 {
		t.Errorf("size = %dx%d, want 40x20", m.Width, m.Height)
	}
	if m.AspectRatio != 2.0 {
		t.Errorf("AspectRatio = %v, want 2.0", m.AspectRatio)
	}
	if m.Status != DensityUnknown {
		t.Errorf("Status = %v, want unknown", m.Status)
	}

	if nm := NewMetrics(nil); nm.Width != 0 || nm.Height != 0 {
		t.Error("NewMetrics(nil) should be zeroed")
	}
}
