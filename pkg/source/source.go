// Package source loads morph source rasters from an asset store.
//
// The morph path is the only suspension point in the engine: two named
// source rasters are loaded from storage before the synchronous blend runs.
// The Store interface keeps that I/O behind an abstraction so tests can
// substitute in-memory fixtures.
package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/raster"
)

// Store provides named source rasters for the morph path.
type Store interface {
	// Load reads the raster stored under name. A missing name fails with
	// SOURCE_NOT_FOUND.
	Load(ctx context.Context, name string) (*raster.Raster, error)

	// List returns the available source names in sorted order.
	List(ctx context.Context) ([]string, error)
}

// Dir is a Store reading grayscale PNGs from a local asset root.
type Dir struct {
	root string
}

// NewDir creates a directory-backed store rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Load implements Store. Names resolve strictly inside the asset root; a
// ".png" extension is appended when absent.
func (d *Dir) Load(ctx context.Context, name string) (*raster.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}
	if err := errors.ValidateAssetName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(d.root, name)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeSourceNotFound,
			"source raster %q not found under %s", name, d.root)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open source raster %s", path)
	}
	defer f.Close()

	return raster.DecodePNG(f)
}

// List implements Store.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(d.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read asset root %s", d.root)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Memory is an in-memory Store for tests.
type Memory struct {
	rasters map[string]*raster.Raster
}

// NewMemory creates a memory store with the given named rasters.
func NewMemory(rasters map[string]*raster.Raster) *Memory {
	if rasters == nil {
		rasters = make(map[string]*raster.Raster)
	}
	return &Memory{rasters: rasters}
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context, name string) (*raster.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := m.rasters[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeSourceNotFound, "source raster %q not found", name)
	}
	return r.Clone(), nil
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.rasters))
	for name := range m.rasters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ensure implementations satisfy Store.
var (
	_ Store = (*Dir)(nil)
	_ Store = (*Memory)(nil)
)
