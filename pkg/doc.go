// Package pkg provides the core libraries for GlyphForge glyph synthesis.
//
// # Overview
//
// GlyphForge generates rasters of musical symbols, thins and validates them,
// and packages the results as content-addressed capsule objects. The pkg
// directory is organized into three main areas:
//
//  1. Engine - pixel model and transforms (raster, skeleton, blend, gen, validate, capsule)
//  2. Orchestration - the forge pipeline tying the engine together (forge)
//  3. Collaborators - storage and plumbing (source, registry, export, config, observability)
//
// # Architecture
//
// The typical data flow through GlyphForge:
//
//	Symbol Request
//	      ↓
//	 [gen] package (synthesize the raw raster)
//	      ↓
//	 [raster] / [skeleton] packages (binarize, thin)
//	      ↓
//	 [validate] package (density, contrast, structure checks)
//	      ↓
//	 [capsule] package (hash-finalized, ownership-safe artifacts)
//	      ↓
//	 PNG + JSON export, registry record
//
// # Quick Start
//
// Generate and export a capsule set:
//
//	import (
//	    "context"
//	    "github.com/glyphforge/glyphforge/pkg/export"
//	    "github.com/glyphforge/glyphforge/pkg/forge"
//	    "github.com/glyphforge/glyphforge/pkg/gen"
//	)
//
//	f := forge.New(nil, nil, nil, nil)
//	set, err := f.Generate(context.Background(), forge.Request{
//	    Kind:       "notehead",
//	    Dimensions: []gen.Dimensions{{Width: 64, Height: 96}},
//	})
//	if err != nil {
//	    return err
//	}
//	defer set.Close()
//
//	err = export.New("out", nil).ExportSet(context.Background(), set)
//
// # Main Packages
//
// ## Engine
//
// [raster] - Single-channel pixel buffers with the canonical ink convention
// (sample < 128 is ink) and the SHA-256 content hash used for capsule
// identity.
//
// [skeleton] - Zhang-Suen thinning reducing filled shapes to one-pixel
// centerlines.
//
// [blend] - Six pixel blend formulas (linear, alpha, additive, multiply,
// screen, overlay) used by the morph path.
//
// [gen] - Symbol generators behind a registry keyed by kind.
//
// [validate] - The validator chain with quality metrics and audited
// overrides.
//
// [capsule] - Ownership-safe capsule and capsule-set artifacts.
//
// ## Orchestration
//
// [forge] - The generation and morph pipelines: lookup, preprocessing,
// validation, hashing, fallback handling, and edge-case derivation.
//
// ## Collaborators
//
// [source] - Morph source stores (directory of PNGs, in-memory).
//
// [registry] - Append-only capsule registry with file, Redis, MongoDB, and
// memory backends.
//
// [export] - PNG + JSON sidecar persistence with registry recording.
//
// [config] - TOML configuration with defaults and validation.
//
// [observability] - Hook interfaces for instrumenting generation and export
// without backend dependencies.
//
// [buildinfo] - ldflags-injected version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/skeleton/... # Specific package
//
// [raster]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/raster
// [skeleton]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/skeleton
// [blend]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/blend
// [gen]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/gen
// [validate]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/validate
// [capsule]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/capsule
// [forge]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/forge
// [source]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/source
// [registry]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/registry
// [export]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/export
// [config]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/config
// [observability]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/glyphforge/glyphforge/pkg/buildinfo
package pkg
