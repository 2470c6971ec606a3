package api

import (
	"fmt"
	"net/http"
	"time"

	"bookery/internal/database"
	"bookery/internal/export"
	"bookery/internal/models"
)

type bookingRequest struct {
	UserID      int64     `json:"user_id"`
	ServiceID   int64     `json:"service_id"`
	BookingDate time.Time `json:"booking_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Notes       string    `json:"notes"`
	TotalPrice  float64   `json:"total_price"`
	// Status is accepted but ignored. New bookings always start out
	// pending.
	Status string `json:"status"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.ServiceID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id and service_id are required")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		writeError(w, http.StatusBadRequest, "start_time and end_time are required")
		return
	}

	booking := &models.Booking{
		UserID:      req.UserID,
		ServiceID:   req.ServiceID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
		TotalPrice:  req.TotalPrice,
	}
	if booking.BookingDate.IsZero() {
		booking.BookingDate = req.StartTime
	}
	if err := s.bookings.CreateBooking(r.Context(), booking); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	skip, limit := s.paging(r)
	filter := database.BookingFilter{Skip: skip, Limit: limit}

	if userID, ok, err := queryInt64(r, "user_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		filter.UserID = userID
	}
	if serviceID, ok, err := queryInt64(r, "service_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		filter.ServiceID = serviceID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidStatus(status) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", status))
			return
		}
		filter.Status = status
	}

	bookings, err := s.bookings.ListBookings(r.Context(), filter)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(bookings) == 0 {
		writeError(w, http.StatusNotFound, "no bookings found")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	serviceID, ok, err := queryInt64(r, "service_id")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "service_id is required")
		return
	}
	start, err := queryTime(r, "start_time")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := queryTime(r, "end_time")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, "start_time must be before end_time")
		return
	}
	var excludeID int64
	if id, ok, err := queryInt64(r, "exclude_booking_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		excludeID = id
	}

	available, err := s.bookings.CheckAvailability(r.Context(), serviceID, start, end, excludeID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service_id": serviceID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
		"available":  available,
	})
}

// handleExportBookings streams an xlsx report; the period defaults to
// the last 30 days.
func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if v := r.URL.Query().Get("end_time"); v != "" {
		t, err := queryTime(r, "end_time")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		end = t
	}
	if v := r.URL.Query().Get("start_time"); v != "" {
		t, err := queryTime(r, "start_time")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		start = t
	}
	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, "start_time must be before end_time")
		return
	}

	bookings, err := s.bookings.ListBookingsByDateRange(r.Context(), start, end, 0, s.cfg.Pagination.MaxPageSize)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=bookings_%s_%s.xlsx",
			start.Format("2006-01-02"), end.Format("2006-01-02")))
	if err := export.WriteBookings(w, bookings, start, end); err != nil {
		s.logger.Error().Err(err).Msg("export failed")
	}
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handlePatchBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var patch models.BookingPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := s.bookings.PatchBooking(r.Context(), id, patch)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := r.URL.Query().Get("status")
	if status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	booking, err := s.bookings.UpdateBookingStatus(r.Context(), id, status)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.bookings.DeleteBooking(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
