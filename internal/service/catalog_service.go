package service

import (
	"context"

	"bookery/internal/domain"
	"bookery/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService manages the bookable service offerings.
type CatalogService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewCatalogService(repo domain.Repository, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogService) CreateService(ctx context.Context, svc *models.Service) error {
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return err
	}
	s.logger.Info().Int64("service_id", svc.ID).Str("name", svc.Name).Msg("service created")
	return nil
}

func (s *CatalogService) GetService(ctx context.Context, id int64) (*models.Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, skip, limit int) ([]*models.Service, error) {
	return s.repo.ListServices(ctx, skip, limit)
}

func (s *CatalogService) ListServicesByCategory(ctx context.Context, category string, skip, limit int) ([]*models.Service, error) {
	return s.repo.ListServicesByCategory(ctx, category, skip, limit)
}

func (s *CatalogService) ListAvailableServices(ctx context.Context, skip, limit int) ([]*models.Service, error) {
	return s.repo.ListAvailableServices(ctx, skip, limit)
}

func (s *CatalogService) SearchServices(ctx context.Context, term string, skip, limit int) ([]*models.Service, error) {
	return s.repo.SearchServices(ctx, term, skip, limit)
}

// PatchService merges present fields onto the stored record.
func (s *CatalogService) PatchService(ctx context.Context, id int64, patch models.ServicePatch) (*models.Service, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(svc)

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("service_id", svc.ID).Msg("service updated")
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("service_id", id).Msg("service deleted")
	return nil
}
