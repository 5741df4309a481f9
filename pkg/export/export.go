// Package export writes finalized capsules to disk and records them in a
// capsule registry. Each capsule produces two files named by its capsule ID:
// a PNG with the raster and a JSON sidecar with metadata, metrics, and the
// validator results.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/observability"
	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/registry"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// sidecar is the JSON document written next to each capsule PNG.
type sidecar struct {
	Metadata capsule.Metadata  `json:"metadata"`
	Metrics  *validate.Metrics `json:"metrics,omitempty"`
	Valid    bool              `json:"valid"`
	Results  []validate.Result `json:"results"`
}

// Exporter writes capsules into a directory and appends them to an optional
// registry. A nil registry disables record keeping.
type Exporter struct {
	dir string
	reg registry.Registry
}

// New creates an exporter rooted at dir. The directory is created on the
// first write.
func New(dir string, reg registry.Registry) *Exporter {
	return &Exporter{dir: dir, reg: reg}
}

// Export writes one capsule. It refuses capsules whose hash was never
// finalized and capsules that have already been closed. When a registry is
// configured the capsule is appended after both files land on disk; a
// duplicate capsule ID is not an error, the record append is skipped.
func (e *Exporter) Export(ctx context.Context, c *capsule.Capsule) error {
	meta := c.Metadata()
	if !meta.Finalized() {
		return errors.New(errors.ErrCodeExportFailed,
			"capsule %q has no finalized hash", meta.TemplateName)
	}
	ras := c.Raster()
	if ras == nil {
		return errors.New(errors.ErrCodeExportFailed,
			"capsule %s is closed", meta.CapsuleID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "create export directory")
	}

	pngBytes, err := raster.EncodePNGBytes(ras)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "encode %s", meta.CapsuleID)
	}
	pngPath := filepath.Join(e.dir, meta.CapsuleID+".png")
	if err := os.WriteFile(pngPath, pngBytes, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", pngPath)
	}

	doc := sidecar{
		Metadata: meta,
		Metrics:  c.Metrics(),
		Valid:    c.Valid(),
		Results:  c.Results(),
	}
	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "encode sidecar for %s", meta.CapsuleID)
	}
	jsonPath := filepath.Join(e.dir, meta.CapsuleID+".json")
	if err := os.WriteFile(jsonPath, jsonBytes, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", jsonPath)
	}

	observability.Registry().OnExport(ctx, meta.CapsuleID, len(pngBytes)+len(jsonBytes))

	if e.reg != nil {
		rec := registry.Record{
			CapsuleID:    meta.CapsuleID,
			TemplateHash: meta.TemplateHash,
			CreatedAt:    time.Now().UTC(),
			Valid:        c.Valid(),
		}
		added, err := e.reg.Append(ctx, rec)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRegistryFailed, err, "record %s", meta.CapsuleID)
		}
		observability.Registry().OnAppend(ctx, meta.CapsuleID, !added)
	}
	return nil
}

// ExportSet writes every capsule in a set, primary first. The first failure
// aborts: already written capsules stay on disk.
func (e *Exporter) ExportSet(ctx context.Context, s *capsule.Set) error {
	for _, c := range s.All() {
		if err := e.Export(ctx, c); err != nil {
			return fmt.Errorf("export %s: %w", c.Metadata().CapsuleID, err)
		}
	}
	return nil
}
