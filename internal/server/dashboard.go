package server

import "net/http"

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {

	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}
