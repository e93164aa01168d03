package store

import (
	"context"
	"testing"
	"time"
)

func TestMemMessageStore_SaveAndRange(t *testing.T) {
	s := NewMemMessageStore(0)
	ctx := context.Background()

	if err := s.Save(ctx, "sess1", 1, []byte("one")); err != nil {
		t.Fatalf("Save(1) error = %v", err)
	}
	if err := s.Save(ctx, "sess1", 2, []byte("two")); err != nil {
		t.Fatalf("Save(2) error = %v", err)
	}
	if err := s.Save(ctx, "sess1", 3, []byte("three")); err != nil {
		t.Fatalf("Save(3) error = %v", err)
	}

	out, err := s.Range(ctx, "sess1", 1, 2)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Range() returned %d entries, want 2", len(out))
	}
	if string(out[0]) != "one" || string(out[1]) != "two" {
		t.Errorf("Range() = %q, want [one two]", out)
	}
}

func TestMemMessageStore_RangeUnknownSession(t *testing.T) {
	s := NewMemMessageStore(0)
	out, err := s.Range(context.Background(), "nope", 1, 5)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if out != nil {
		t.Errorf("Range() for unknown session = %v, want nil", out)
	}
}

func TestMemMessageStore_SaveCopiesInput(t *testing.T) {
	s := NewMemMessageStore(0)
	ctx := context.Background()
	raw := []byte("original")
	if err := s.Save(ctx, "sess1", 1, raw); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	raw[0] = 'X'

	out, _ := s.Range(ctx, "sess1", 1, 1)
	if len(out) != 1 || string(out[0]) != "original" {
		t.Errorf("stored message mutated by caller's buffer: got %q", out)
	}
}

func TestMemMessageStore_SweepEvictsOldMessages(t *testing.T) {
	s := NewMemMessageStore(10 * time.Millisecond)
	ctx := context.Background()
	if err := s.Save(ctx, "sess1", 1, []byte("one")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	s.Sweep()

	out, err := s.Range(ctx, "sess1", 1, 1)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Range() after Sweep() = %v, want empty", out)
	}
}

func TestMemMessageStore_SweepNoOpWhenMaxAgeZero(t *testing.T) {
	s := NewMemMessageStore(0)
	ctx := context.Background()
	if err := s.Save(ctx, "sess1", 1, []byte("one")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	s.Sweep()

	out, err := s.Range(ctx, "sess1", 1, 1)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("Range() after no-op Sweep() = %v, want 1 entry", out)
	}
}

func TestMemSequenceStore_LoadDefaultsToOne(t *testing.T) {
	s := NewMemSequenceStore()
	in, out, err := s.Load(context.Background(), "unseen")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in != 1 || out != 1 {
		t.Errorf("Load() = (%d, %d), want (1, 1)", in, out)
	}
}

func TestMemSequenceStore_SaveThenLoad(t *testing.T) {
	s := NewMemSequenceStore()
	ctx := context.Background()
	if err := s.Save(ctx, "sess1", 5, 9); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	in, out, err := s.Load(ctx, "sess1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in != 5 || out != 9 {
		t.Errorf("Load() = (%d, %d), want (5, 9)", in, out)
	}
}
