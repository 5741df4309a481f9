package forge

import (
	"context"
	"fmt"
	"time"

	"github.com/glyphforge/glyphforge/pkg/blend"
	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/observability"
	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// Morph loads two named source rasters, blends them with the requested
// formula, and runs the full validator chain over the result. Unlike
// generation there is no fallback path: a missing source or a blend error
// aborts with an error. The returned capsule is finalized and owned by the
// caller.
func (f *Forge) Morph(ctx context.Context, req MorphRequest) (*capsule.Capsule, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid morph request: %w", err)
	}

	start := time.Now()
	observability.Forge().OnMorphStart(ctx, req.SourceA, req.SourceB)

	a, err := f.sources.Load(ctx, req.SourceA)
	if err != nil {
		observability.Forge().OnMorphComplete(ctx, "", time.Since(start), err)
		return nil, err
	}
	b, err := f.sources.Load(ctx, req.SourceB)
	if err != nil {
		observability.Forge().OnMorphComplete(ctx, "", time.Since(start), err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		observability.Forge().OnMorphComplete(ctx, "", time.Since(start), err)
		return nil, err
	}

	blended, err := blend.Apply(req.Mode, a, b, req.Factor)
	if err != nil {
		observability.Forge().OnMorphComplete(ctx, "", time.Since(start), err)
		return nil, err
	}

	metrics := validate.NewMetrics(blended)
	valid, results := f.chain.Run(blended, metrics, req.Overrides)

	meta := capsule.NewMetadata(req.Name, generatedBy()).
		WithProvenance(capsule.Provenance{
			SourceDescription: fmt.Sprintf("morph of %s and %s", req.SourceA, req.SourceB),
			Preprocessing:     fmt.Sprintf("%s blend, factor %.2f", req.Mode, req.Factor),
			ValidatedAt:       time.Now().UTC(),
			Validator:         fmt.Sprintf("chain of %d", len(f.chain.Names())),
		}).
		WithHash(raster.ContentHash(blended))

	c := capsule.New(blended, meta, metrics, valid, results)
	observability.Forge().OnValidate(ctx, meta.CapsuleID, valid)
	observability.Forge().OnMorphComplete(ctx, meta.CapsuleID, time.Since(start), nil)
	f.logger.Info("morphed capsule",
		"id", meta.CapsuleID,
		"mode", req.Mode,
		"valid", valid,
		"duration", time.Since(start))
	return c, nil
}
