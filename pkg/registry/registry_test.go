package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func record(id string) Record {
	return Record{
		CapsuleID:    id,
		TemplateHash: "deadbeef",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		Valid:        true,
	}
}

// registryContract exercises the behavior every backend must share.
func registryContract(t *testing.T, reg Registry) {
	t.Helper()
	ctx := context.Background()

	ok, err := reg.Append(ctx, record("notehead-01234567"))
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if !ok {
		t.Fatal("first append should succeed")
	}

	// Duplicate is skipped without error
	ok, err = reg.Append(ctx, record("notehead-01234567"))
	if err != nil {
		t.Fatalf("duplicate Append error: %v", err)
	}
	if ok {
		t.Error("duplicate append must be skipped")
	}

	has, err := reg.Has(ctx, "notehead-01234567")
	if err != nil {
		t.Fatalf("Has error: %v", err)
	}
	if !has {
		t.Error("Has should find the appended record")
	}

	has, _ = reg.Has(ctx, "ghost")
	if has {
		t.Error("Has found a record that was never appended")
	}

	if _, err := reg.Append(ctx, record("stem-89abcdef")); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Append order preserved
	if records[0].CapsuleID != "notehead-01234567" || records[1].CapsuleID != "stem-89abcdef" {
		t.Errorf("records out of order: %v", records)
	}
}

func TestMemoryRegistry(t *testing.T) {
	reg := NewMemoryRegistry()
	defer reg.Close()
	registryContract(t, reg)
}

func TestFileRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.jsonl")
	reg, err := NewFileRegistry(path)
	if err != nil {
		t.Fatalf("NewFileRegistry error: %v", err)
	}
	defer reg.Close()
	registryContract(t, reg)
}

func TestFileRegistryPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.jsonl")
	ctx := context.Background()

	reg, err := NewFileRegistry(path)
	if err != nil {
		t.Fatalf("NewFileRegistry error: %v", err)
	}
	if _, err := reg.Append(ctx, record("flat-0badf00d")); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	reg.Close()

	// Reopen: duplicate detection must survive the restart.
	reg2, err := NewFileRegistry(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reg2.Close()

	ok, err := reg2.Append(ctx, record("flat-0badf00d"))
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if ok {
		t.Error("record from previous session must count as duplicate")
	}

	records, _ := reg2.List(ctx)
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
}

func TestAppendCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := NewMemoryRegistry()
	if _, err := reg.Append(ctx, record("x")); err == nil {
		t.Error("cancelled context should abort Append")
	}
}
