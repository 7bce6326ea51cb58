package repo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shuttersync/internal/core"
	"shuttersync/internal/log"
	"shuttersync/internal/store"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func newTestHub(ks store.KeyedStore) *Hub {
	return NewHub(ks, quietLogger())
}

func draft(client, eventType string) core.EventDraft {
	return core.EventDraft{
		ClientName:     client,
		EventType:      eventType,
		EventStartDate: time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC),
		Payment:        500,
		PaymentStatus:  core.Pending,
	}
}

func mustAdd(t *testing.T, r *EventRepository, d core.EventDraft) core.Event {
	t.Helper()
	e, err := r.Add(context.Background(), d)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return e
}

func typesOf(t *testing.T, pair *Repos) []string {
	t.Helper()
	return pair.Types.List()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
