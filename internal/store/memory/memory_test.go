package memory

import (
	"context"
	"errors"
	"testing"

	"shuttersync/internal/store"
)

func TestGetSetRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Get(ctx, "u1", store.KeyEvents); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "u1", store.KeyEvents, []byte(`[1,2]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "u1", store.KeyEvents)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Fatalf("got %q", got)
	}

	// Overwrite replaces the whole value.
	if err := s.Set(ctx, "u1", store.KeyEvents, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ = s.Get(ctx, "u1", store.KeyEvents)
	if string(got) != `[]` {
		t.Fatalf("after overwrite got %q", got)
	}
}

func TestPartitionsAreIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Set(ctx, "u1", store.KeyEventTypes, []byte(`["Wedding"]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := s.Get(ctx, "u2", store.KeyEventTypes); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other partition, got %v", err)
	}
}

func TestReturnedBytesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []byte(`abc`)
	if err := s.Set(ctx, "u1", "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'x'

	got, _ := s.Get(ctx, "u1", "k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}
	got[0] = 'y'
	again, _ := s.Get(ctx, "u1", "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}
