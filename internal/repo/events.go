package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"shuttersync/internal/core"
	"shuttersync/internal/log"
	"shuttersync/internal/store"
)

// ErrEventNotFound is reported by Update when no stored event carries the
// given identifier.
var ErrEventNotFound = errors.New("repo: event not found")

// EventRepository holds the event collection of one partition in memory
// and writes it back to the keyed store as a whole after every mutation.
type EventRepository struct {
	mu        *sync.Mutex
	store     store.KeyedStore
	logger    *log.Logger
	partition string
	events    []core.Event
}

func newEventRepository(ctx context.Context, mu *sync.Mutex, ks store.KeyedStore, logger *log.Logger, partition string) *EventRepository {
	r := &EventRepository{
		mu:        mu,
		store:     ks,
		logger:    logger.WithComponent(log.ComponentEvents),
		partition: partition,
	}
	r.load(ctx)
	return r
}

// load pulls the partition's event blob. Missing or unreadable data
// degrades to an empty collection.
func (r *EventRepository) load(ctx context.Context) {
	r.events = nil
	if r.partition == "" {
		return
	}
	raw, err := r.store.Get(ctx, r.partition, store.KeyEvents)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		r.logger.WarnContext(ctx, "reading events failed, starting empty",
			log.FieldPartition, r.partition, log.FieldError, err)
		return
	}
	var events []core.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		r.logger.WarnContext(ctx, "corrupt event blob, starting empty",
			log.FieldPartition, r.partition, log.FieldError, err)
		return
	}
	r.events = events
}

// persistLocked writes the whole collection back. Callers hold the mutex.
func (r *EventRepository) persistLocked(ctx context.Context) error {
	if r.partition == "" {
		return nil
	}
	raw, err := json.Marshal(r.events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	if err := r.store.Set(ctx, r.partition, store.KeyEvents, raw); err != nil {
		return fmt.Errorf("persist events: %w", err)
	}
	return nil
}

// List returns a snapshot copy of the partition's events. Storage order is
// not significant; ordering is a view concern.
func (r *EventRepository) List() []core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Add assigns a fresh identifier to the draft, appends it and persists.
func (r *EventRepository) Add(ctx context.Context, draft core.EventDraft) (core.Event, error) {
	draft.Normalize()
	event := draft.Event(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if err := r.persistLocked(ctx); err != nil {
		r.logger.WarnContext(ctx, "event not persisted",
			log.FieldOperation, log.OpAdd, log.FieldEventID, event.ID, log.FieldError, err)
	}
	r.logger.InfoContext(ctx, "event added",
		log.FieldEventID, event.ID, log.FieldEventType, event.EventType)
	return event, nil
}

// Update replaces the stored record with the same identifier wholesale.
func (r *EventRepository) Update(ctx context.Context, event core.Event) error {
	draft := event.Draft()
	draft.Normalize()
	event = draft.Event(event.ID)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID != event.ID {
			continue
		}
		r.events[i] = event
		if err := r.persistLocked(ctx); err != nil {
			r.logger.WarnContext(ctx, "event not persisted",
				log.FieldOperation, log.OpUpdate, log.FieldEventID, event.ID, log.FieldError, err)
		}
		return nil
	}
	return ErrEventNotFound
}

// Delete removes the matching record. Deleting an unknown identifier is a
// no-op, so the call is idempotent.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}
		r.events = append(r.events[:i], r.events[i+1:]...)
		if err := r.persistLocked(ctx); err != nil {
			r.logger.WarnContext(ctx, "event not persisted",
				log.FieldOperation, log.OpDelete, log.FieldEventID, id, log.FieldError, err)
		}
		return nil
	}
	return nil
}

// CascadeRenameType rewrites the type of every event referencing old.
// A persistence failure here is returned to the caller: the type list has
// already committed and silently keeping stale references would leave the
// partition inconsistent.
func (r *EventRepository) CascadeRenameType(ctx context.Context, old, new string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for i := range r.events {
		if r.events[i].EventType == old {
			r.events[i].EventType = new
			changed++
		}
	}
	if changed == 0 {
		return nil
	}
	if err := r.persistLocked(ctx); err != nil {
		return fmt.Errorf("cascade rename %q to %q: %w", old, new, err)
	}
	r.logger.InfoContext(ctx, "cascaded type rename",
		log.FieldOldLabel, old, log.FieldNewLabel, new, "events", changed)
	return nil
}

// CascadeResetType reassigns events of a deleted type to the protected
// default.
func (r *EventRepository) CascadeResetType(ctx context.Context, deleted string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for i := range r.events {
		if r.events[i].EventType == deleted {
			r.events[i].EventType = core.DefaultEventType
			changed++
		}
	}
	if changed == 0 {
		return nil
	}
	if err := r.persistLocked(ctx); err != nil {
		return fmt.Errorf("cascade reset %q: %w", deleted, err)
	}
	r.logger.InfoContext(ctx, "cascaded type reset",
		log.FieldOldLabel, deleted, "events", changed)
	return nil
}
