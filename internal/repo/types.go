package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"shuttersync/internal/core"
	"shuttersync/internal/log"
	"shuttersync/internal/store"
)

// TypeCascader receives the secondary mutations a label change forces on
// the event collection. Implemented by EventRepository.
type TypeCascader interface {
	CascadeRenameType(ctx context.Context, old, new string) error
	CascadeResetType(ctx context.Context, deleted string) error
}

// EventTypeRepository holds the ordered label set of one partition.
// Invalid input (empty labels, duplicates, touching the protected
// default) is deliberately ignored rather than rejected.
type EventTypeRepository struct {
	mu        *sync.Mutex
	store     store.KeyedStore
	logger    *log.Logger
	partition string
	labels    []string
	cascader  TypeCascader
}

func newEventTypeRepository(ctx context.Context, mu *sync.Mutex, ks store.KeyedStore, logger *log.Logger, partition string, cascader TypeCascader) *EventTypeRepository {
	r := &EventTypeRepository{
		mu:        mu,
		store:     ks,
		logger:    logger.WithComponent(log.ComponentTypes),
		partition: partition,
		cascader:  cascader,
	}
	r.load(ctx)
	return r
}

// load pulls the stored label list, seeding the defaults when the
// partition has none. The protected default is re-appended if a stored
// list lost it.
func (r *EventTypeRepository) load(ctx context.Context) {
	r.labels = r.loadLabels(ctx)
	if !containsType(r.labels, core.DefaultEventType) {
		r.labels = append(r.labels, core.DefaultEventType)
	}
	core.SortEventTypes(r.labels)
}

func (r *EventTypeRepository) loadLabels(ctx context.Context) []string {
	if r.partition == "" {
		return seedLabels()
	}
	raw, err := r.store.Get(ctx, r.partition, store.KeyEventTypes)
	if errors.Is(err, store.ErrNotFound) {
		return seedLabels()
	}
	if err != nil {
		r.logger.WarnContext(ctx, "reading event types failed, seeding defaults",
			log.FieldPartition, r.partition, log.FieldError, err)
		return seedLabels()
	}
	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		r.logger.WarnContext(ctx, "corrupt event type blob, seeding defaults",
			log.FieldPartition, r.partition, log.FieldError, err)
		return seedLabels()
	}
	return labels
}

func seedLabels() []string {
	out := make([]string, len(core.DefaultEventTypes))
	copy(out, core.DefaultEventTypes)
	return out
}

func containsType(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func (r *EventTypeRepository) persistLocked(ctx context.Context) error {
	if r.partition == "" {
		return nil
	}
	raw, err := json.Marshal(r.labels)
	if err != nil {
		return fmt.Errorf("marshal event types: %w", err)
	}
	if err := r.store.Set(ctx, r.partition, store.KeyEventTypes, raw); err != nil {
		return fmt.Errorf("persist event types: %w", err)
	}
	return nil
}

// List returns the labels in their canonical order: alphabetical with the
// protected default last.
func (r *EventTypeRepository) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Add inserts a new label. Empty labels and case-insensitive duplicates
// are silently ignored.
func (r *EventTypeRepository) Add(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	r.mu.Lock()
	defer r.mu.Unlock()
	if label == "" || core.ContainsTypeFold(r.labels, label) {
		return nil
	}
	r.labels = append(r.labels, label)
	core.SortEventTypes(r.labels)
	if err := r.persistLocked(ctx); err != nil {
		r.logger.WarnContext(ctx, "event types not persisted",
			log.FieldOperation, log.OpAdd, log.FieldNewLabel, label, log.FieldError, err)
	}
	return nil
}

// Rename replaces old with new and cascades the change into the event
// collection. The label list commits first; a cascade failure is returned
// as a fatal inconsistency rather than swallowed.
func (r *EventTypeRepository) Rename(ctx context.Context, old, new string) error {
	new = strings.TrimSpace(new)
	if new == "" || new == old || old == core.DefaultEventType {
		return nil
	}

	r.mu.Lock()
	if !containsType(r.labels, old) {
		r.mu.Unlock()
		return nil
	}
	for i := range r.labels {
		if r.labels[i] == old {
			r.labels[i] = new
		}
	}
	core.SortEventTypes(r.labels)
	if err := r.persistLocked(ctx); err != nil {
		r.logger.WarnContext(ctx, "event types not persisted",
			log.FieldOperation, log.OpRename, log.FieldOldLabel, old, log.FieldNewLabel, new, log.FieldError, err)
	}
	r.mu.Unlock()

	if err := r.cascader.CascadeRenameType(ctx, old, new); err != nil {
		return fmt.Errorf("rename %q: %w", old, err)
	}
	r.logger.InfoContext(ctx, "event type renamed",
		log.FieldOldLabel, old, log.FieldNewLabel, new)
	return nil
}

// Delete removes a label and reassigns its events to the protected
// default. Deleting the protected default or an unknown label is a no-op.
func (r *EventTypeRepository) Delete(ctx context.Context, label string) error {
	if label == core.DefaultEventType {
		return nil
	}

	r.mu.Lock()
	found := false
	for i := range r.labels {
		if r.labels[i] == label {
			r.labels = append(r.labels[:i], r.labels[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		r.mu.Unlock()
		return nil
	}
	if err := r.persistLocked(ctx); err != nil {
		r.logger.WarnContext(ctx, "event types not persisted",
			log.FieldOperation, log.OpDelete, log.FieldOldLabel, label, log.FieldError, err)
	}
	r.mu.Unlock()

	if err := r.cascader.CascadeResetType(ctx, label); err != nil {
		return fmt.Errorf("delete %q: %w", label, err)
	}
	r.logger.InfoContext(ctx, "event type deleted", log.FieldOldLabel, label)
	return nil
}
