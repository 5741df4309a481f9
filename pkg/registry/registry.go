// Package registry implements the append-only capsule registry.
//
// Every exported capsule is recorded as (CapsuleID, TemplateHash, timestamp,
// validity). Records are immutable once appended and duplicates are skipped
// by capsule ID, making the registry safe to replay. Backends:
//   - file: JSON-lines append-only log for CLI usage
//   - redis: Redis-backed registry for multi-instance deployments
//   - mongo: MongoDB-backed registry for the training platform
//
// Backend selection happens at the composition root from configuration; the
// engine only sees the Registry interface.
package registry

import (
	"context"
	"time"
)

// Record is one append-only registry entry.
type Record struct {
	CapsuleID    string    `json:"capsule_id" bson:"_id"`
	TemplateHash string    `json:"template_hash" bson:"template_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	Valid        bool      `json:"valid" bson:"valid"`
}

// Registry is the append-only capsule registry.
type Registry interface {
	// Append records r. It returns false (and no error) when a record with
	// the same CapsuleID already exists; the registry is never rewritten.
	Append(ctx context.Context, r Record) (bool, error)

	// Has reports whether a capsule ID has been recorded.
	Has(ctx context.Context, capsuleID string) (bool, error)

	// List returns all records in append order.
	List(ctx context.Context) ([]Record, error)

	// Close releases backend resources.
	Close() error
}
