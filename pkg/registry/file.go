package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/glyphforge/glyphforge/pkg/errors"
)

// FileRegistry implements a JSON-lines append-only registry for CLI usage.
// Each line is one Record; the file is only ever appended to.
type FileRegistry struct {
	mu   sync.Mutex
	path string
	seen map[string]struct{}
	f    *os.File
}

// NewFileRegistry opens (or creates) the registry log at path. Existing
// records are scanned once so duplicate detection works across restarts.
func NewFileRegistry(path string) (*FileRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "create registry dir")
	}

	seen := make(map[string]struct{})
	if existing, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(existing)
		for scanner.Scan() {
			var r Record
			if json.Unmarshal(scanner.Bytes(), &r) == nil && r.CapsuleID != "" {
				seen[r.CapsuleID] = struct{}{}
			}
		}
		existing.Close()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "open registry %s", path)
	}

	return &FileRegistry{path: path, seen: seen, f: f}, nil
}

// Append implements Registry.
func (r *FileRegistry) Append(ctx context.Context, rec Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[rec.CapsuleID]; dup {
		return false, nil
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "marshal record")
	}
	if _, err := r.f.Write(append(line, '\n')); err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "append record")
	}

	r.seen[rec.CapsuleID] = struct{}{}
	return true, nil
}

// Has implements Registry.
func (r *FileRegistry) Has(ctx context.Context, capsuleID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[capsuleID]
	return ok, nil
}

// List implements Registry. Records are re-read from disk so the list
// reflects appends from other processes sharing the log.
func (r *FileRegistry) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "open registry %s", r.path)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec Record
		if json.Unmarshal(scanner.Bytes(), &rec) == nil && rec.CapsuleID != "" {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "scan registry")
	}
	return records, nil
}

// Close implements Registry.
func (r *FileRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// Ensure FileRegistry implements Registry.
var _ Registry = (*FileRegistry)(nil)
