package gen

import (
	"bytes"
	"testing"

	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/raster"
)

func TestDefaultRegistryKinds(t *testing.T) {
	r := DefaultRegistry()

	for _, kind := range []string{"notehead", "stem", "flag", "sharp", "flat", "natural", "quarter-rest", "barline", "dot", "clef"} {
		g, err := r.Lookup(kind)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", kind, err)
		}
		if g.Kind() != kind {
			t.Errorf("Kind() = %q, want %q", g.Kind(), kind)
		}
	}
}

func TestLookupMiss(t *testing.T) {
	r := DefaultRegistry()

	if _, err := r.Lookup("spiral"); !errors.Is(err, errors.ErrCodeGeneratorNotFound) {
		t.Errorf("Lookup(spiral) error = %v, want GENERATOR_NOT_FOUND", err)
	}
}

func TestAllGeneratorsProduceInkAndBackground(t *testing.T) {
	r := DefaultRegistry()
	dims := Dimensions{Width: 32, Height: 48}

	for _, kind := range r.Kinds() {
		g, _ := r.Lookup(kind)
		out, err := g.Generate(dims, 7)
		if err != nil {
			t.Fatalf("%s: Generate error: %v", kind, err)
		}
		if out.Width() != dims.Width || out.Height() != dims.Height {
			t.Errorf("%s: dimensions = %dx%d, want %s", kind, out.Width(), out.Height(), dims)
		}
		ink := out.InkCount()
		if ink == 0 {
			t.Errorf("%s: no ink pixels", kind)
		}
		if ink == out.Width()*out.Height() {
			t.Errorf("%s: no background pixels", kind)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	r := DefaultRegistry()
	dims := Dimensions{Width: 40, Height: 40}

	for _, kind := range r.Kinds() {
		g, _ := r.Lookup(kind)
		a, err := g.Generate(dims, 42)
		if err != nil {
			t.Fatalf("%s: Generate error: %v", kind, err)
		}
		b, err := g.Generate(dims, 42)
		if err != nil {
			t.Fatalf("%s: Generate error: %v", kind, err)
		}
		if !bytes.Equal(a.Data(), b.Data()) {
			t.Errorf("%s: identical (dims, seed) must be byte-identical", kind)
		}
	}
}

func TestNoteheadSeedJitter(t *testing.T) {
	g := &Notehead{}
	dims := Dimensions{Width: 64, Height: 64}

	a, _ := g.Generate(dims, 1)
	b, _ := g.Generate(dims, 2)

	if bytes.Equal(a.Data(), b.Data()) {
		t.Error("different seeds should jitter the notehead")
	}
}

func TestInvalidDimensions(t *testing.T) {
	g := &Stem{}

	for _, dims := range []Dimensions{{0, 10}, {10, 0}, {-4, 4}} {
		if _, err := g.Generate(dims, 0); !errors.Is(err, errors.ErrCodeInvalidDimensions) {
			t.Errorf("Generate(%s) error = %v, want INVALID_DIMENSIONS", dims, err)
		}
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate kind registration should panic")
		}
	}()
	NewRegistry(&Stem{}, &Stem{})
}

func TestGeneratorOutputIsInkConvention(t *testing.T) {
	g := &Barline{}
	out, err := g.Generate(Dimensions{Width: 24, Height: 24}, 0)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// Drawn strokes are ink (0), the rest background (255).
	for _, v := range out.Data() {
		if v != raster.Ink && v != raster.Background {
			t.Fatalf("unexpected sample %d", v)
		}
	}
}
