// Package gen provides the pluggable symbol generator capability set.
//
// A generator maps (symbol kind, dimensions, seed) to a raw single-channel
// raster. Generators are stateless: a single instance serves concurrent
// calls without locking. The internal drawing is deliberately simple —
// filled polygons and strokes — because the engine contract only cares that
// a generator is a deterministic raw image producer.
package gen

import (
	"fmt"
	"sort"

	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/raster"
)

// Dimensions is a requested output size in pixels.
type Dimensions struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// String formats dimensions as "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Generator produces raw rasters for one symbol kind.
//
// Implementations must be deterministic: identical (dimensions, seed) input
// always yields byte-identical output. The seed is advisory for generators
// with no stochastic element. Non-positive dimensions fail with
// INVALID_DIMENSIONS and are never clamped.
type Generator interface {
	// Kind returns the symbol kind this generator produces.
	Kind() string

	// Generate renders a raw raster at the given size.
	Generate(dims Dimensions, seed int64) (*raster.Raster, error)
}

// Registry holds generators keyed by symbol kind. The registry is populated
// at composition time and read-only afterwards, so lookups need no locking.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a registry containing the given generators.
// Registering two generators for the same kind is a programming error and
// panics at composition time.
func NewRegistry(gens ...Generator) *Registry {
	r := &Registry{generators: make(map[string]Generator, len(gens))}
	for _, g := range gens {
		if _, dup := r.generators[g.Kind()]; dup {
			panic(fmt.Sprintf("gen: duplicate generator for kind %q", g.Kind()))
		}
		r.generators[g.Kind()] = g
	}
	return r
}

// DefaultRegistry returns a registry with every built-in symbol generator.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&Notehead{},
		&Stem{},
		&Flag{},
		&Sharp{},
		&Flat{},
		&Natural{},
		&QuarterRest{},
		&Barline{},
		&AugmentationDot{},
		&Clef{},
	)
}

// Lookup returns the generator for kind, or GENERATOR_NOT_FOUND.
func (r *Registry) Lookup(kind string) (Generator, error) {
	g, ok := r.generators[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeGeneratorNotFound,
			"no generator registered for symbol kind %q", kind)
	}
	return g, nil
}

// Kinds returns the registered symbol kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.generators))
	for k := range r.generators {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
