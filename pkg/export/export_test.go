package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/registry"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

func testCapsule(t *testing.T, name string) *capsule.Capsule {
	t.Helper()
	r, err := raster.New(8, 8)
	if err != nil {
		t.Fatalf("new raster: %v", err)
	}
	for x := 2; x < 6; x++ {
		r.Set(x, 4, raster.Ink)
	}
	meta := capsule.NewMetadata(name, "test").WithHash(raster.ContentHash(r))
	results := []validate.Result{{Valid: true, Validator: "Density Validator", Message: "ok"}}
	return capsule.New(r, meta, validate.NewMetrics(r), true, results)
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	reg := registry.NewMemoryRegistry()
	e := New(dir, reg)

	c := testCapsule(t, "glyph")
	defer c.Close()

	if err := e.Export(context.Background(), c); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	id := c.Metadata().CapsuleID
	pngPath := filepath.Join(dir, id+".png")
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("missing PNG: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		t.Fatalf("missing sidecar: %v", err)
	}
	var doc sidecar
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("sidecar is not valid JSON: %v", err)
	}
	if doc.Metadata.CapsuleID != id {
		t.Errorf("sidecar capsule ID = %q, want %q", doc.Metadata.CapsuleID, id)
	}
	if !doc.Valid || len(doc.Results) != 1 {
		t.Errorf("sidecar lost validation state: valid=%v results=%d", doc.Valid, len(doc.Results))
	}

	recs, err := reg.List(context.Background())
	if err != nil {
		t.Fatalf("list registry: %v", err)
	}
	if len(recs) != 1 || recs[0].CapsuleID != id {
		t.Errorf("registry records = %+v, want one record for %s", recs, id)
	}
}

func TestExportRefusesUnfinalized(t *testing.T) {
	r, _ := raster.New(4, 4)
	c := capsule.New(r, capsule.NewMetadata("pending-glyph", "test"), nil, false, nil)
	defer c.Close()

	e := New(t.TempDir(), nil)
	err := e.Export(context.Background(), c)
	if err == nil {
		t.Fatal("expected error for placeholder hash")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeExportFailed {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeExportFailed)
	}
}

func TestExportRefusesClosed(t *testing.T) {
	c := testCapsule(t, "closed-glyph")
	c.Close()

	e := New(t.TempDir(), nil)
	if err := e.Export(context.Background(), c); err == nil {
		t.Fatal("expected error for closed capsule")
	}
}

func TestExportDuplicateSkipped(t *testing.T) {
	dir := t.TempDir()
	reg := registry.NewMemoryRegistry()
	e := New(dir, reg)

	c := testCapsule(t, "glyph")
	defer c.Close()

	if err := e.Export(context.Background(), c); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if err := e.Export(context.Background(), c); err != nil {
		t.Fatalf("re-export must not fail on a duplicate record: %v", err)
	}

	recs, _ := reg.List(context.Background())
	if len(recs) != 1 {
		t.Errorf("registry has %d records, want 1", len(recs))
	}
}

func TestExportSet(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	set := &capsule.Set{
		Primary:  testCapsule(t, "primary"),
		Variants: []*capsule.Capsule{testCapsule(t, "variant")},
	}
	defer set.Close()

	if err := e.ExportSet(context.Background(), set); err != nil {
		t.Fatalf("export set failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 files (2 capsules x png+json), got %d", len(entries))
	}
}

func TestExportCancelled(t *testing.T) {
	c := testCapsule(t, "glyph")
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(t.TempDir(), nil)
	if err := e.Export(ctx, c); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
