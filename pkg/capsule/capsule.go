// Package capsule defines the ownership-safe artifact objects produced by
// the forge: a validated raster plus its metadata, metrics, and validator
// results.
//
// # Ownership
//
// A capsule exclusively owns its raster. Closing a capsule (or its owning
// set) releases the pixel buffer; no raster may outlive its capsule. The
// forge guarantees that partially built capsules are closed when a pipeline
// error aborts generation, so callers only ever manage fully formed sets.
package capsule

import (
	"time"

	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// Provenance records where a capsule's pixels came from and how they were
// judged.
type Provenance struct {
	SourceDescription string    `json:"source_description"`
	Preprocessing     string    `json:"preprocessing,omitempty"`
	ValidatedAt       time.Time `json:"validated_at"`
	Validator         string    `json:"validator"`
	Notes             string    `json:"notes,omitempty"`
}

// Metadata describes a capsule. It is a value type updated by copy-and-patch:
// the With* methods return modified copies and never mutate the receiver, so
// a base template can be shared across variants safely.
type Metadata struct {
	TemplateName string     `json:"template_name"`
	GeneratedBy  string     `json:"generated_by"`
	TemplateHash string     `json:"template_hash"`
	CapsuleID    string     `json:"capsule_id"`
	Seed         *int64     `json:"seed,omitempty"`
	Provenance   Provenance `json:"provenance"`
}

// NewMetadata builds a metadata template with the placeholder hash. The
// hash and capsule ID are finalized later via WithHash.
func NewMetadata(templateName, generatedBy string) Metadata {
	return Metadata{
		TemplateName: templateName,
		GeneratedBy:  generatedBy,
		TemplateHash: raster.HashPlaceholder,
		CapsuleID:    raster.HashPlaceholder,
	}
}

// WithHash returns a copy with the content hash set and the capsule ID
// finalized as "{TemplateName}-{hash[:8]}". This is always the last patch
// applied before a capsule is assembled.
func (m Metadata) WithHash(hash string) Metadata {
	m.TemplateHash = hash
	m.CapsuleID = m.TemplateName + "-" + raster.ShortHash(hash)
	return m
}

// WithName returns a copy with a new template name. The capsule ID is reset
// to the placeholder; callers must re-finalize with WithHash.
func (m Metadata) WithName(name string) Metadata {
	m.TemplateName = name
	m.TemplateHash = raster.HashPlaceholder
	m.CapsuleID = raster.HashPlaceholder
	return m
}

// WithSeed returns a copy recording the generation seed.
func (m Metadata) WithSeed(seed int64) Metadata {
	m.Seed = &seed
	return m
}

// WithProvenance returns a copy with the provenance block replaced.
func (m Metadata) WithProvenance(p Provenance) Metadata {
	m.Provenance = p
	return m
}

// Finalized reports whether the hash has been computed (i.e. is not the
// placeholder sentinel). Export layers must refuse unfinalized metadata.
func (m Metadata) Finalized() bool {
	return m.TemplateHash != raster.HashPlaceholder && m.TemplateHash != ""
}

// Capsule is a validated raster with its metadata, metrics, overall
// validity, and the full per-validator result list.
type Capsule struct {
	meta    Metadata
	metrics *validate.Metrics
	valid   bool
	results []validate.Result
	ras     *raster.Raster
	closed  bool
}

// New assembles a capsule taking exclusive ownership of ras.
func New(ras *raster.Raster, meta Metadata, metrics *validate.Metrics, valid bool, results []validate.Result) *Capsule {
	return &Capsule{
		meta:    meta,
		metrics: metrics,
		valid:   valid,
		results: results,
		ras:     ras,
	}
}

// Metadata returns the capsule's metadata.
func (c *Capsule) Metadata() Metadata {
	return c.meta
}

// Metrics returns the quality metrics recorded by the validator chain.
func (c *Capsule) Metrics() *validate.Metrics {
	return c.metrics
}

// Valid reports the overall validity: the AND of every non-overridden
// validator result.
func (c *Capsule) Valid() bool {
	return c.valid
}

// Results returns the per-validator results, including synthesized override
// entries.
func (c *Capsule) Results() []validate.Result {
	return c.results
}

// Raster returns the owned raster, or nil once the capsule is closed.
func (c *Capsule) Raster() *raster.Raster {
	if c.closed {
		return nil
	}
	return c.ras
}

// Close releases the pixel buffer. Close is idempotent.
func (c *Capsule) Close() error {
	c.closed = true
	c.ras = nil
	return nil
}

// Set owns a primary capsule and an ordered list of variants (additional
// sizes followed by edge-case derivatives).
type Set struct {
	Primary  *Capsule
	Variants []*Capsule
}

// All returns the primary followed by every variant, skipping nils.
func (s *Set) All() []*Capsule {
	if s == nil {
		return nil
	}
	out := make([]*Capsule, 0, 1+len(s.Variants))
	if s.Primary != nil {
		out = append(out, s.Primary)
	}
	out = append(out, s.Variants...)
	return out
}

// Close disposes the primary and every variant.
func (s *Set) Close() error {
	for _, c := range s.All() {
		_ = c.Close()
	}
	return nil
}
