package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookery/internal/config"
	"bookery/internal/database"
	"bookery/internal/domain"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the REST API for users, services, bookings, stats
// and log review.
type HTTPServer struct {
	cfg      *config.Config
	users    domain.UserService
	catalog  domain.CatalogService
	bookings domain.BookingService
	stats    domain.StatsService
	server   *http.Server
	logger   *zerolog.Logger
}

func NewHTTPServer(
	cfg *config.Config,
	users domain.UserService,
	catalog domain.CatalogService,
	bookings domain.BookingService,
	stats domain.StatsService,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		users:    users,
		catalog:  catalog,
		bookings: bookings,
		stats:    stats,
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/users", srv.handleCreateUser)
	mux.HandleFunc("GET /api/v1/users", srv.handleListUsers)
	mux.HandleFunc("GET /api/v1/users/{id}", srv.handleGetUser)
	mux.HandleFunc("PUT /api/v1/users/{id}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /api/v1/users/{id}", srv.handleDeleteUser)
	mux.HandleFunc("GET /api/v1/users/{id}/bookings/history", srv.handleUserBookingHistory)

	mux.HandleFunc("POST /api/v1/services", srv.handleCreateService)
	mux.HandleFunc("GET /api/v1/services", srv.handleListServices)
	mux.HandleFunc("GET /api/v1/services/search", srv.handleSearchServices)
	mux.HandleFunc("GET /api/v1/services/{id}", srv.handleGetService)
	mux.HandleFunc("PATCH /api/v1/services/{id}", srv.handlePatchService)
	mux.HandleFunc("DELETE /api/v1/services/{id}", srv.handleDeleteService)

	mux.HandleFunc("POST /api/v1/bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /api/v1/bookings", srv.handleListBookings)
	mux.HandleFunc("GET /api/v1/bookings/availability", srv.handleAvailability)
	mux.HandleFunc("GET /api/v1/bookings/export", srv.handleExportBookings)
	mux.HandleFunc("GET /api/v1/bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /api/v1/bookings/{id}", srv.handlePatchBooking)
	mux.HandleFunc("DELETE /api/v1/bookings/{id}", srv.handleDeleteBooking)
	mux.HandleFunc("PATCH /api/v1/bookings/{id}/status", srv.handleUpdateBookingStatus)

	mux.HandleFunc("GET /api/v1/stats/bookings", srv.handleBookingStats)
	mux.HandleFunc("GET /api/v1/stats/services", srv.handleServiceStats)
	mux.HandleFunc("GET /api/v1/stats/users", srv.handleUserStats)

	mux.HandleFunc("GET /api/v1/logs", srv.handleLogs)
	mux.HandleFunc("GET /api/v1/health", srv.handleHealth)

	handler := requestIDMiddleware(
		srv.loggingMiddleware(
			srv.rateLimitMiddleware(
				metricsMiddleware(mux))))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeDomainError maps core error kinds to transport status codes:
// not-found -> 404, invalid argument -> 400, slot conflict -> 409,
// anything else is a store failure -> 500.
func (s *HTTPServer) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrServiceNotFound),
		errors.Is(err, database.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrInvalidStatus),
		errors.Is(err, database.ErrInvalidTimeRange),
		errors.Is(err, database.ErrDuplicate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrSlotTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
