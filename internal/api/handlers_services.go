package api

import (
	"net/http"

	"bookery/internal/models"
)

type serviceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int64   `json:"duration_minutes"`
	Category        string  `json:"category"`
	IsAvailable     *bool   `json:"is_available"`
}

func (s *HTTPServer) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	svc := &models.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		IsAvailable:     available,
	}
	if err := s.catalog.CreateService(r.Context(), svc); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

// handleListServices supports optional category and available=true
// filters on top of the plain paginated listing.
func (s *HTTPServer) handleListServices(w http.ResponseWriter, r *http.Request) {
	skip, limit := s.paging(r)

	var (
		services []*models.Service
		err      error
	)
	switch {
	case r.URL.Query().Get("category") != "":
		services, err = s.catalog.ListServicesByCategory(r.Context(), r.URL.Query().Get("category"), skip, limit)
	case r.URL.Query().Get("available") == "true":
		services, err = s.catalog.ListAvailableServices(r.Context(), skip, limit)
	default:
		services, err = s.catalog.ListServices(r.Context(), skip, limit)
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(services) == 0 {
		writeError(w, http.StatusNotFound, "no services found")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *HTTPServer) handleSearchServices(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	skip, limit := s.paging(r)
	services, err := s.catalog.SearchServices(r.Context(), term, skip, limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(services) == 0 {
		writeError(w, http.StatusNotFound, "no services found")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *HTTPServer) handleGetService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	svc, err := s.catalog.GetService(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *HTTPServer) handlePatchService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var patch models.ServicePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	svc, err := s.catalog.PatchService(r.Context(), id, patch)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *HTTPServer) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.catalog.DeleteService(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
