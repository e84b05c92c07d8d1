package internal

import "net/http"

// listBins serves distinct bin locations with item counts.
func (s *Server) listBins(w http.ResponseWriter, r *http.Request) {
	bins, err := s.Store.ListBins(r.Context())
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"bins": bins})
}
