package http

import (
	"net/http"

	"shuttersync/internal/ideas"
)

type ideasResponse struct {
	Ideas string `json:"ideas"`
}

// handleIdeas asks the generator for shot ideas. The generator fails
// soft, so this handler always answers 200 with some text.
func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	var req ideas.IdeaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ideasResponse{Ideas: s.ideas.ShotIdeas(r.Context(), req)})
}
