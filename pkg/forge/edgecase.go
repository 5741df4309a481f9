package forge

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// Edge-case transform parameters. These are deliberately mild: the
// derivatives exercise downstream consumers with realistic perturbations,
// not adversarial inputs.
const (
	edgeCaseRotateDegrees = 15.0
	edgeCaseCropMargin    = 0.10
	edgeCaseBlurSigma     = 2.0
)

// deriveEdgeCase builds one derivative capsule from a finalized primary.
// The derivative carries the primary's validity and results verbatim: it was
// derived from an already judged raster, so it is not re-validated. The hash
// and capsule ID are recomputed from the transformed pixels.
func (f *Forge) deriveEdgeCase(primary *capsule.Capsule, kind EdgeCaseKind) (*capsule.Capsule, error) {
	src := primary.Raster()
	if src == nil {
		return nil, fmt.Errorf("primary capsule already closed")
	}

	transformed, err := applyEdgeCase(src, kind)
	if err != nil {
		return nil, err
	}

	meta := primary.Metadata().
		WithName(primary.Metadata().TemplateName + "-" + string(kind))
	prov := meta.Provenance
	prov.Notes = fmt.Sprintf("edge-case derivative (%s) of %s", kind, primary.Metadata().CapsuleID)
	meta = meta.WithProvenance(prov).WithHash(raster.ContentHash(transformed))

	// Metrics get the transformed raster's geometry. Density and its status
	// carry over from the primary, since the derivative is not re-judged.
	metrics := validate.NewMetrics(transformed)
	if pm := primary.Metrics(); pm != nil {
		metrics.Density = pm.Density
		metrics.Status = pm.Status
	}

	f.logger.Debug("derived edge-case capsule", "id", meta.CapsuleID, "kind", kind)
	return capsule.New(transformed, meta, metrics, primary.Valid(), primary.Results()), nil
}

// applyEdgeCase runs one perturbation over a copy of src. The source raster
// is never mutated.
func applyEdgeCase(src *raster.Raster, kind EdgeCaseKind) (*raster.Raster, error) {
	img := src.ToGray()

	var out image.Image
	switch kind {
	case EdgeCaseRotated:
		// Rotation expands the canvas; the fill matches the background so
		// the corners stay blank.
		out = imaging.Rotate(img, edgeCaseRotateDegrees, color.White)
	case EdgeCaseCropped:
		w := src.Width() - int(float64(src.Width())*2*edgeCaseCropMargin)
		h := src.Height() - int(float64(src.Height())*2*edgeCaseCropMargin)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		out = imaging.CropCenter(img, w, h)
	case EdgeCaseBlurred:
		out = imaging.Blur(img, edgeCaseBlurSigma)
	default:
		return nil, fmt.Errorf("unknown edge case kind %q", kind)
	}

	return raster.FromImage(out)
}
