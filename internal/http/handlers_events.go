package http

import (
	"errors"
	"net/http"

	"shuttersync/internal/core"
	"shuttersync/internal/feed"
	"shuttersync/internal/repo"
)

type eventListResponse struct {
	Events []core.Event `json:"events"`
}

// handleListEvents serves the event list view: filter, then sort. Query
// parameters: q (text), type, status, sort, dir.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	events := s.hub.For(r.Context(), user.ID).Events.List()

	q := r.URL.Query()
	events = core.FilterEvents(events, core.EventFilter{
		Text:   q.Get("q"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	})

	key := core.SortKey(q.Get("sort"))
	if !key.Valid() {
		key = core.SortByStartDate
	}
	dir := core.SortDirection(q.Get("dir"))
	if dir != core.Ascending {
		dir = core.Descending
	}
	events = core.SortEvents(events, key, dir)

	writeJSON(w, http.StatusOK, eventListResponse{Events: events})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var draft core.EventDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user := userFrom(r.Context())
	event, err := s.hub.For(r.Context(), user.ID).Events.Add(r.Context(), draft)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save the event.")
		return
	}

	s.publisher.PublishEventChange(r.Context(),
		feed.NewEventChangeMessage(user.ID, event.ID, feed.ActionCreated))
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var draft core.EventDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user := userFrom(r.Context())
	event := draft.Event(r.PathValue("id"))
	err := s.hub.For(r.Context(), user.ID).Events.Update(r.Context(), event)
	if errors.Is(err, repo.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "No event with this identifier.")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update the event.")
		return
	}

	s.publisher.PublishEventChange(r.Context(),
		feed.NewEventChangeMessage(user.ID, event.ID, feed.ActionUpdated))
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id := r.PathValue("id")
	if err := s.hub.For(r.Context(), user.ID).Events.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete the event.")
		return
	}

	s.publisher.PublishEventChange(r.Context(),
		feed.NewEventChangeMessage(user.ID, id, feed.ActionDeleted))
	w.WriteHeader(http.StatusNoContent)
}
