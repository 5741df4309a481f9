package registry

import (
	"context"
	"sync"
)

// MemoryRegistry is an in-memory registry for development and testing.
type MemoryRegistry struct {
	mu      sync.Mutex
	records []Record
	seen    map[string]struct{}
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{seen: make(map[string]struct{})}
}

// Append implements Registry.
func (r *MemoryRegistry) Append(ctx context.Context, rec Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[rec.CapsuleID]; dup {
		return false, nil
	}
	r.records = append(r.records, rec)
	r.seen[rec.CapsuleID] = struct{}{}
	return true, nil
}

// Has implements Registry.
func (r *MemoryRegistry) Has(ctx context.Context, capsuleID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[capsuleID]
	return ok, nil
}

// List implements Registry.
func (r *MemoryRegistry) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Close implements Registry.
func (r *MemoryRegistry) Close() error {
	return nil
}

// Ensure MemoryRegistry implements Registry.
var _ Registry = (*MemoryRegistry)(nil)
