package repo

import (
	"context"
	"testing"
	"time"

	"shuttersync/internal/core"
	"shuttersync/internal/store"
	"shuttersync/internal/store/memory"
)

func TestAddAssignsDistinctIDs(t *testing.T) {
	pair := newTestHub(memory.New()).For(context.Background(), "u1")

	const n = 25
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		e := mustAdd(t, pair.Events, draft("Client", "Wedding"))
		if e.ID == "" {
			t.Fatalf("empty id assigned")
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
	if got := len(pair.Events.List()); got != n {
		t.Fatalf("list length = %d, want %d", got, n)
	}
}

func TestUpdateReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	pair := newTestHub(memory.New()).For(ctx, "u1")

	e := mustAdd(t, pair.Events, draft("Alice", "Wedding"))
	e.ClientName = "Alice & Bob"
	e.Payment = 3500
	e.PaymentStatus = core.Paid
	if err := pair.Events.Update(ctx, e); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := pair.Events.List()
	if len(got) != 1 {
		t.Fatalf("list length = %d", len(got))
	}
	if got[0].ClientName != "Alice & Bob" || got[0].Payment != 3500 || got[0].PaymentStatus != core.Paid {
		t.Fatalf("record not replaced: %+v", got[0])
	}
}

func TestUpdateUnknownIDReportsNotFound(t *testing.T) {
	ctx := context.Background()
	pair := newTestHub(memory.New()).For(ctx, "u1")

	e := draft("Ghost", "Wedding").Event("no-such-id")
	if err := pair.Events.Update(ctx, e); err != ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestUpdateClearsVideographyWindow(t *testing.T) {
	ctx := context.Background()
	pair := newTestHub(memory.New()).For(ctx, "u1")

	start := time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)
	d := draft("Alice", "Wedding")
	d.NeedsVideography = true
	d.VideographyStartDate = &start
	d.VideographyEndDate = &start
	e := mustAdd(t, pair.Events, d)

	e.NeedsVideography = false
	if err := pair.Events.Update(ctx, e); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := pair.Events.List()[0]
	if got.VideographyStartDate != nil || got.VideographyEndDate != nil {
		t.Fatalf("videography window survived the toggle: %+v", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pair := newTestHub(memory.New()).For(ctx, "u1")

	a := mustAdd(t, pair.Events, draft("A", "Wedding"))
	mustAdd(t, pair.Events, draft("B", "Wedding"))

	if err := pair.Events.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(pair.Events.List()); got != 1 {
		t.Fatalf("after delete list length = %d, want 1", got)
	}
	// Second delete of the same id changes nothing.
	if err := pair.Events.Delete(ctx, a.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if got := len(pair.Events.List()); got != 1 {
		t.Fatalf("after second delete list length = %d, want 1", got)
	}
}

func TestMutationsPersistAcrossReload(t *testing.T) {
	ctx := context.Background()
	ks := memory.New()
	hub := newTestHub(ks)

	pair := hub.For(ctx, "u1")
	e := mustAdd(t, pair.Events, draft("Alice", "Wedding"))

	hub.Drop("u1")
	reloaded := hub.For(ctx, "u1")
	got := reloaded.Events.List()
	if len(got) != 1 || got[0].ID != e.ID {
		t.Fatalf("reload lost the event: %+v", got)
	}
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	ks := memory.New()
	if err := ks.Set(ctx, "u1", store.KeyEvents, []byte(`{not json`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	pair := newTestHub(ks).For(ctx, "u1")
	if got := pair.Events.List(); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d events", len(got))
	}
}

func TestEmptyPartitionIsEmptyAndNonPersisting(t *testing.T) {
	ctx := context.Background()
	ks := memory.New()
	hub := newTestHub(ks)

	pair := hub.For(ctx, "")
	mustAdd(t, pair.Events, draft("Nobody", "Wedding"))

	if _, err := ks.Get(ctx, "", store.KeyEvents); err != store.ErrNotFound {
		t.Fatalf("anonymous mutation reached the store: %v", err)
	}
	// A fresh anonymous view starts empty again.
	if got := hub.For(ctx, "").Events.List(); len(got) != 0 {
		t.Fatalf("anonymous view leaked state: %d events", len(got))
	}
}

func TestPartitionsDoNotLeak(t *testing.T) {
	ctx := context.Background()
	hub := newTestHub(memory.New())

	mustAdd(t, hub.For(ctx, "u1").Events, draft("Alice", "Wedding"))

	if got := hub.For(ctx, "u2").Events.List(); len(got) != 0 {
		t.Fatalf("u2 sees u1's events: %d", len(got))
	}
}
