// Package repo implements the per-user event and event-type repositories
// on top of the keyed store, including the cascade that keeps events
// consistent with label renames and deletions.
package repo

import (
	"context"
	"sync"

	"shuttersync/internal/log"
	"shuttersync/internal/store"
)

// Repos bundles the two repositories of one partition. They share a mutex
// so a cascade observes a settled event collection.
type Repos struct {
	Events *EventRepository
	Types  *EventTypeRepository
}

// Hub hands out repository pairs per user identifier. A pair is loaded
// from the store on first access and cached; asking for a different
// identifier is the reload-on-user-change hook, and nothing is shared
// between partitions.
type Hub struct {
	mu     sync.Mutex
	store  store.KeyedStore
	logger *log.Logger
	open   map[string]*Repos
}

func NewHub(ks store.KeyedStore, logger *log.Logger) *Hub {
	return &Hub{
		store:  ks,
		logger: logger,
		open:   make(map[string]*Repos),
	}
}

// For returns the repositories of the given user. An empty identifier
// yields a fresh, non-persisting pair backed by nothing.
func (h *Hub) For(ctx context.Context, userID string) *Repos {
	if userID == "" {
		return h.build(ctx, "")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if pair, ok := h.open[userID]; ok {
		return pair
	}
	pair := h.build(ctx, userID)
	h.open[userID] = pair
	return pair
}

// Drop forgets a partition's in-memory state; the next For reloads it
// from the store.
func (h *Hub) Drop(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.open, userID)
}

func (h *Hub) build(ctx context.Context, partition string) *Repos {
	mu := &sync.Mutex{}
	events := newEventRepository(ctx, mu, h.store, h.logger, partition)
	types := newEventTypeRepository(ctx, mu, h.store, h.logger, partition, events)
	return &Repos{Events: events, Types: types}
}
