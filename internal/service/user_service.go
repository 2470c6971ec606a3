package service

import (
	"context"

	"bookery/internal/domain"
	"bookery/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	user.IsActive = true
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, skip, limit)
}

// UpdateUser is a full replace: the stored record takes every field from
// the request, matching the original API contract.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	current, err := s.repo.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}
	user.IsActive = current.IsActive
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
