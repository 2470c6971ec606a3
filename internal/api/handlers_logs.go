package api

import (
	"net/http"
	"strconv"

	"bookery/internal/logs"
)

// handleLogs serves the application log file with level and substring
// filtering for quick review without shell access to the host.
func (s *HTTPServer) handleLogs(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	query := r.URL.Query().Get("query")

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	limit := s.cfg.Pagination.DefaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > s.cfg.Pagination.MaxPageSize {
		limit = s.cfg.Pagination.MaxPageSize
	}

	lines, total, err := logs.Read(s.cfg.Logging.FilePath, level, query, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("log read failed")
		writeError(w, http.StatusInternalServerError, "failed to read logs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"logs":   lines,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}
