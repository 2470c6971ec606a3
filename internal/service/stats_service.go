package service

import (
	"context"
	"time"

	"bookery/internal/domain"
	"bookery/internal/models"

	"github.com/rs/zerolog"
)

// StatsService serves aggregate snapshots, short-circuiting through the
// cache. Aggregates are pure reporting; staleness up to the cache TTL is
// acceptable.
type StatsService struct {
	repo   domain.Repository
	cache  domain.StatsCache
	logger *zerolog.Logger
}

func NewStatsService(repo domain.Repository, cache domain.StatsCache, logger *zerolog.Logger) *StatsService {
	return &StatsService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *StatsService) BookingStats(ctx context.Context) (*models.BookingStats, error) {
	var cached models.BookingStats
	if s.cacheGet(ctx, models.StatsCacheKeyBookings, &cached) {
		return &cached, nil
	}

	stats, err := s.repo.BookingStats(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, models.StatsCacheKeyBookings, stats)
	return stats, nil
}

func (s *StatsService) ServiceStats(ctx context.Context) (*models.ServiceStats, error) {
	var cached models.ServiceStats
	if s.cacheGet(ctx, models.StatsCacheKeyServices, &cached) {
		return &cached, nil
	}

	stats, err := s.repo.ServiceStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, models.StatsCacheKeyServices, stats)
	return stats, nil
}

func (s *StatsService) UserStats(ctx context.Context) (*models.UserStats, error) {
	var cached models.UserStats
	if s.cacheGet(ctx, models.StatsCacheKeyUsers, &cached) {
		return &cached, nil
	}

	stats, err := s.repo.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, models.StatsCacheKeyUsers, stats)
	return stats, nil
}

func (s *StatsService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("stats cache read failed")
		return false
	}
	return found
}

func (s *StatsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("stats cache write failed")
	}
}
