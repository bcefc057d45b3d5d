package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
)

type GroupPostgreSQL struct {
	db *gorm.DB

	// locking is set on transaction-bound instances; cell lookups then take
	// a FOR UPDATE row lock so concurrent joins serialize on the cell.
	locking bool
}

func NewGroupPostgreSQL(db *gorm.DB, locking bool) repositories.GroupRepository {
	return &GroupPostgreSQL{db: db, locking: locking}
}

func (r *GroupPostgreSQL) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *GroupPostgreSQL) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

func (r *GroupPostgreSQL) GetByCell(ctx context.Context, batchNumber, optionID int) (*models.Group, error) {
	query := r.db.WithContext(ctx)
	if r.locking {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var group models.Group
	err := query.First(&group, "batch_number = ? AND option_id = ?", batchNumber, optionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group cell: %w", err)
	}
	return &group, nil
}

func (r *GroupPostgreSQL) GetByMember(ctx context.Context, userID string) (*models.Group, error) {
	// Member ids are stored as a JSON array; containment is a jsonb probe.
	var group models.Group
	err := r.db.WithContext(ctx).
		Where("member_ids @> ?", fmt.Sprintf(`["%s"]`, userID)).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group by member: %w", err)
	}
	return &group, nil
}

func (r *GroupPostgreSQL) ListByOption(ctx context.Context, optionID int) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).
		Where("option_id = ?", optionID).
		Order("batch_number ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by option: %w", err)
	}
	return groups, nil
}

func (r *GroupPostgreSQL) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).
		Order("option_id ASC, batch_number ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (r *GroupPostgreSQL) Update(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}
