package handler

import "net/http"

// GetTimeline handles GET /api/v1/trips/{tripID}/timeline.
// The response is derived entirely from stored state; calling it twice
// without intervening writes returns identical bodies.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	view, err := s.timeline.View(r.Context(), tripID)
	if err != nil {
		serviceError(w, err, "timeline")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
