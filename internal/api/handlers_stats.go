package api

import "net/http"

func (s *HTTPServer) handleBookingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.BookingStats(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *HTTPServer) handleServiceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.ServiceStats(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *HTTPServer) handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.UserStats(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
