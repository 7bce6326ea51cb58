package http

import (
	"net/http"

	"shuttersync/internal/log"
)

type (
	typeListResponse struct {
		EventTypes []string `json:"eventTypes"`
	}

	addTypeRequest struct {
		Label string `json:"label"`
	}

	renameTypeRequest struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
)

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	types := s.hub.For(r.Context(), user.ID).Types
	writeJSON(w, http.StatusOK, typeListResponse{EventTypes: types.List()})
}

// handleAddType inserts a label. Empty and duplicate labels are silent
// no-ops; the response always carries the current list.
func (s *Server) handleAddType(w http.ResponseWriter, r *http.Request) {
	var req addTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user := userFrom(r.Context())
	types := s.hub.For(r.Context(), user.ID).Types
	if err := types.Add(r.Context(), req.Label); err != nil {
		s.logger.ErrorContext(r.Context(), "add event type failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Could not add the event type.")
		return
	}
	writeJSON(w, http.StatusOK, typeListResponse{EventTypes: types.List()})
}

// handleRenameType renames a label and cascades into the events. A failed
// cascade is a server error: the label list has committed but events
// could not be rewritten.
func (s *Server) handleRenameType(w http.ResponseWriter, r *http.Request) {
	var req renameTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user := userFrom(r.Context())
	types := s.hub.For(r.Context(), user.ID).Types
	if err := types.Rename(r.Context(), req.Old, req.New); err != nil {
		s.logger.ErrorContext(r.Context(), "rename event type failed",
			log.FieldOldLabel, req.Old, log.FieldNewLabel, req.New, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Could not rename the event type.")
		return
	}
	writeJSON(w, http.StatusOK, typeListResponse{EventTypes: types.List()})
}

func (s *Server) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("label")

	user := userFrom(r.Context())
	types := s.hub.For(r.Context(), user.ID).Types
	if err := types.Delete(r.Context(), label); err != nil {
		s.logger.ErrorContext(r.Context(), "delete event type failed",
			log.FieldOldLabel, label, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Could not delete the event type.")
		return
	}
	writeJSON(w, http.StatusOK, typeListResponse{EventTypes: types.List()})
}
