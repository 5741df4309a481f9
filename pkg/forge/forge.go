// Package forge implements the generation and morph orchestrator tying the
// engine together: generator lookup, the raw → binarize → skeletonize
// pipeline, the validator chain with audited overrides, content hashing,
// and capsule assembly, including fallback and edge-case variant handling.
//
// # Architecture
//
// A generation request walks a fixed state machine per requested dimension:
//
//	GeneratorLookup → RawGenerate → Binarize → (Skeletonize) → Validate → Hash → Finalize
//
// The primary dimension always runs first, then each size variant, then
// each edge-case derivative (which reads the finalized primary raster).
// A lookup miss is terminal: the forge returns an invalid fallback capsule
// instead of an error.
//
// # Concurrency
//
// The Forge is stateless with respect to requests: generators, validators,
// and the blender hold no request-specific mutable state, so a single
// shared Forge safely serves concurrent calls without locking. Each call
// owns its raster buffers exclusively.
//
// # Usage
//
//	f := forge.New(nil, nil, nil, logger)
//	set, err := f.Generate(ctx, forge.Request{
//	    Kind:       "notehead",
//	    Dimensions: []gen.Dimensions{{Width: 64, Height: 64}},
//	})
//	if err != nil {
//	    return err
//	}
//	defer set.Close()
package forge

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glyphforge/glyphforge/pkg/buildinfo"
	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/gen"
	"github.com/glyphforge/glyphforge/pkg/observability"
	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/skeleton"
	"github.com/glyphforge/glyphforge/pkg/source"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// fallbackHandlerName is the validator name attached to fallback capsule
// results.
const fallbackHandlerName = "FallbackHandler"

// Forge orchestrates generation and morphing. Construct once and share;
// see the package documentation for the concurrency contract.
type Forge struct {
	generators *gen.Registry
	chain      *validate.Chain
	sources    source.Store
	logger     *log.Logger
}

// New creates a forge.
// If generators is nil, the default registry is used.
// If chain is nil, the default density → contrast → structure chain with
// default thresholds is used.
// If sources is nil, morphing has no assets and always reports
// SOURCE_NOT_FOUND.
// If logger is nil, log.Default() is used.
func New(generators *gen.Registry, chain *validate.Chain, sources source.Store, logger *log.Logger) *Forge {
	if generators == nil {
		generators = gen.DefaultRegistry()
	}
	if chain == nil {
		chain = validate.DefaultChain(validate.DefaultMinDensity, validate.DefaultMaxDensity)
	}
	if sources == nil {
		sources = source.NewMemory(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Forge{
		generators: generators,
		chain:      chain,
		sources:    sources,
		logger:     logger,
	}
}

// generatedBy identifies the producer in capsule metadata.
func generatedBy() string {
	return "glyphforge " + buildinfo.Version
}

// Generate runs the full generation pipeline for one request and returns a
// finalized, disposal-ready capsule set. Quality failures are not errors:
// they surface as Valid=false capsules. Only structurally invalid requests
// or an aborted context produce an error, and in that case every capsule
// already built for the request is closed before the error is returned.
func (f *Forge) Generate(ctx context.Context, req Request) (*capsule.Set, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()
	observability.Forge().OnGenerateStart(ctx, req.Kind, len(req.Dimensions))

	g, err := f.generators.Lookup(req.Kind)
	if err != nil {
		// Terminal fallback state: no generator for this kind degrades to
		// an explicitly invalid blank capsule, never an error.
		observability.Forge().OnFallback(ctx, req.Kind)
		set, fbErr := f.fallbackSet(req)
		observability.Forge().OnGenerateComplete(ctx, req.Kind, 1, time.Since(start), fbErr)
		return set, fbErr
	}

	set := &capsule.Set{}
	for i, dims := range req.Dimensions {
		if err := ctx.Err(); err != nil {
			_ = set.Close()
			return nil, err
		}

		c, err := f.buildCapsule(ctx, g, &req, dims)
		if err != nil {
			_ = set.Close()
			return nil, err
		}
		if i == 0 {
			set.Primary = c
		} else {
			set.Variants = append(set.Variants, c)
		}
	}

	// Edge-case derivatives read the finalized primary raster, so they run
	// strictly after every size variant.
	for _, kind := range req.EdgeCases {
		if err := ctx.Err(); err != nil {
			_ = set.Close()
			return nil, err
		}

		c, err := f.deriveEdgeCase(set.Primary, kind)
		if err != nil {
			_ = set.Close()
			return nil, err
		}
		set.Variants = append(set.Variants, c)
	}

	f.logger.Info("generated capsule set",
		"kind", req.Kind,
		"capsules", len(set.All()),
		"valid", set.Primary.Valid(),
		"duration", time.Since(start))
	observability.Forge().OnGenerateComplete(ctx, req.Kind, len(set.All()), time.Since(start), nil)

	return set, nil
}

// buildCapsule runs the per-dimension pipeline: raw generate, binarize,
// optional skeletonize, validate, hash, finalize.
func (f *Forge) buildCapsule(ctx context.Context, g gen.Generator, req *Request, dims gen.Dimensions) (*capsule.Capsule, error) {
	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	}

	raw, err := g.Generate(dims, seed)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The finalized raster is the furthest requested stage of the
	// raw → binarized → skeletonized pipeline.
	final := raw
	preprocessing := string(OutputRaw)
	if req.wantsForm(OutputBinarized) || req.wantsForm(OutputSkeletonized) {
		final = raw.Binarize()
		preprocessing = string(OutputBinarized)
	}
	if req.wantsForm(OutputSkeletonized) {
		final = skeleton.Thin(final)
		preprocessing = "zhang-suen skeleton"
	}

	metrics := validate.NewMetrics(final)
	valid, results := f.chain.Run(final, metrics, req.Overrides)

	hash := raster.ContentHash(final)
	meta := capsule.NewMetadata(fmt.Sprintf("%s-%s", req.Kind, dims), generatedBy())
	if req.Seed != nil {
		meta = meta.WithSeed(*req.Seed)
	}
	meta = meta.WithProvenance(capsule.Provenance{
		SourceDescription: fmt.Sprintf("synthesized %s glyph", req.Kind),
		Preprocessing:     preprocessing,
		ValidatedAt:       time.Now().UTC(),
		Validator:         fmt.Sprintf("chain of %d", len(f.chain.Names())),
	})
	// Hash and ID are always the last patch.
	meta = meta.WithHash(hash)

	c := capsule.New(final, meta, metrics, valid, results)
	observability.Forge().OnValidate(ctx, meta.CapsuleID, valid)
	f.logger.Debug("finalized capsule",
		"id", meta.CapsuleID,
		"valid", valid,
		"density", fmt.Sprintf("%.2f%%", metrics.Density))
	return c, nil
}

// fallbackSet builds the terminal fallback result: a single invalid capsule
// wrapping a blank raster of the primary requested dimensions, with one
// FallbackHandler result carrying the failure reason.
func (f *Forge) fallbackSet(req Request) (*capsule.Set, error) {
	dims := req.Dimensions[0]
	blank, err := raster.New(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("no generator registered for symbol kind %q", req.Kind)
	meta := capsule.NewMetadata(fmt.Sprintf("%s-%s", req.Kind, dims), generatedBy()).
		WithProvenance(capsule.Provenance{
			SourceDescription: "fallback: " + reason,
			ValidatedAt:       time.Now().UTC(),
			Validator:         fallbackHandlerName,
		}).
		WithHash(raster.ContentHash(blank))

	results := []validate.Result{{
		Valid:     false,
		Validator: fallbackHandlerName,
		Message:   reason,
	}}

	f.logger.Warn("generator lookup miss, producing fallback capsule", "kind", req.Kind)
	return &capsule.Set{
		Primary: capsule.New(blank, meta, validate.NewMetrics(blank), false, results),
	}, nil
}
