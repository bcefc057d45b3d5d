package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SEACET-CSE/edugroup-service/internal/cache"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

type optionService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
}

func NewOptionService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	cacheManager *cache.CacheManager,
) OptionService {
	return &optionService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
	}
}

func (s *optionService) GetOptions(ctx context.Context) ([]*models.PreferenceOption, error) {
	options, err := s.repo.Option().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	return options, nil
}

func (s *optionService) GetOptionsWithStats(ctx context.Context) ([]*OptionWithStats, error) {
	options, err := s.GetOptions(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*OptionWithStats, 0, len(options))
	for _, option := range options {
		stats, err := s.GetOptionStats(ctx, option.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &OptionWithStats{PreferenceOption: option, Stats: *stats})
	}
	return result, nil
}

func (s *optionService) UpdateOption(ctx context.Context, id int, req *OptionUpdateRequest) (*models.PreferenceOption, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	option := &models.PreferenceOption{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.Option().Update(ctx, option); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to update option: %w", err)
	}

	cache.InvalidateOptionCache(ctx, s.cacheManager, id)

	s.logger.Info("Option updated", "option_id", id, "title", req.Title)
	return s.repo.Option().GetByID(ctx, id)
}

// GetOptionStats replays the allocator's batch scan without writing: the
// first batch with room and its remaining seats, or {false, 4, 0} when the
// topic is at its 24-seat ceiling. A join issued right after this read
// lands in the reported batch absent concurrent mutation.
func (s *optionService) GetOptionStats(ctx context.Context, optionID int) (*models.OptionStats, error) {
	if optionID < 1 || optionID > models.OptionCount {
		return nil, ErrOptionNotFound
	}

	cacheKey := fmt.Sprintf("option:%d", optionID)
	var stats models.OptionStats

	err := s.cacheManager.Stats.CacheOrExecute(ctx, cacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeOptionStats(ctx, optionID)
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *optionService) computeOptionStats(ctx context.Context, optionID int) (*models.OptionStats, error) {
	for batch := 1; batch <= models.MaxBatches; batch++ {
		group, err := s.repo.Group().GetByCell(ctx, batch, optionID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				// Never materialized: all seats free.
				return &models.OptionStats{Available: true, Batch: batch, Remaining: models.GroupCapacity}, nil
			}
			return nil, fmt.Errorf("failed to get group cell: %w", err)
		}

		if !group.IsFull() {
			return &models.OptionStats{Available: true, Batch: batch, Remaining: group.Remaining()}, nil
		}
	}

	return &models.OptionStats{Available: false, Batch: models.MaxBatches, Remaining: 0}, nil
}
