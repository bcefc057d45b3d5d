package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SEACET-CSE/edugroup-service/internal/cache"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
)

type OptionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewOptionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.OptionRepository {
	return &OptionPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// GetByID retrieves a topic by id with caching
func (r *OptionPostgreSQL) GetByID(ctx context.Context, id int) (*models.PreferenceOption, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var option models.PreferenceOption

	err := r.cacheManager.Option.CacheOrExecute(ctx, cacheKey, &option, cache.OptionCacheConfig.TTL, func() (interface{}, error) {
		var dbOption models.PreferenceOption
		err := r.db.WithContext(ctx).First(&dbOption, "id = ?", id).Error
		if err != nil {
			return nil, err
		}
		return &dbOption, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get option: %w", err)
	}

	return &option, nil
}

// List retrieves the full topic catalog, ordered by id, with caching
func (r *OptionPostgreSQL) List(ctx context.Context) ([]*models.PreferenceOption, error) {
	var options []*models.PreferenceOption

	err := r.cacheManager.Option.CacheOrExecute(ctx, "list", &options, cache.OptionCacheConfig.TTL, func() (interface{}, error) {
		var dbOptions []*models.PreferenceOption
		if err := r.db.WithContext(ctx).Order("id ASC").Find(&dbOptions).Error; err != nil {
			return nil, err
		}
		return dbOptions, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}

	return options, nil
}

// Update edits a topic's title/description and invalidates cache
func (r *OptionPostgreSQL) Update(ctx context.Context, option *models.PreferenceOption) error {
	result := r.db.WithContext(ctx).Model(&models.PreferenceOption{}).
		Where("id = ?", option.ID).
		Updates(map[string]interface{}{
			"title":       option.Title,
			"description": option.Description,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update option: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateOptionCache(ctx, r.cacheManager, option.ID)
	return nil
}
