package api

import (
	"net/http"

	"bookery/internal/models"
)

type userRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "email and username are required")
		return
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := s.users.CreateUser(r.Context(), user); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := s.paging(r)
	users, err := s.users.ListUsers(r.Context(), skip, limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(users) == 0 {
		writeError(w, http.StatusNotFound, "no users found")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "email and username are required")
		return
	}

	user := &models.User{
		ID:       id,
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := s.users.UpdateUser(r.Context(), user); err != nil {
		s.writeDomainError(w, err)
		return
	}
	updated, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.users.DeleteUser(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleUserBookingHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.users.GetUser(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	skip, limit := s.paging(r)
	bookings, err := s.bookings.UserBookingHistory(r.Context(), id, skip, limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(bookings) == 0 {
		writeError(w, http.StatusNotFound, "no booking history found")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
