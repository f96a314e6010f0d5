package httpserver

import "net/http"

// getStatus reports reachability of the cache and the database.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.app.Status(r.Context()))
}

// getStats reports user and file counts.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
