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

type UploadPostgreSQL struct {
	db *gorm.DB
}

func NewUploadPostgreSQL(db *gorm.DB) repositories.UploadRepository {
	return &UploadPostgreSQL{db: db}
}

func (r *UploadPostgreSQL) Get(ctx context.Context, studentID string, sectionID int) (*models.SectionUpload, error) {
	var upload models.SectionUpload
	err := r.db.WithContext(ctx).
		First(&upload, "student_id = ? AND section_id = ?", studentID, sectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return &upload, nil
}

// Save upserts on the (student_id, section_id) composite key.
func (r *UploadPostgreSQL) Save(ctx context.Context, upload *models.SectionUpload) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "section_id"}},
			UpdateAll: true,
		}).
		Create(upload).Error
	if err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

func (r *UploadPostgreSQL) Delete(ctx context.Context, studentID string, sectionID int) error {
	err := r.db.WithContext(ctx).
		Delete(&models.SectionUpload{}, "student_id = ? AND section_id = ?", studentID, sectionID).Error
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

func (r *UploadPostgreSQL) ListByStudent(ctx context.Context, studentID string) ([]*models.SectionUpload, error) {
	var uploads []*models.SectionUpload
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("section_id ASC").
		Find(&uploads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads for student: %w", err)
	}
	return uploads, nil
}

func (r *UploadPostgreSQL) List(ctx context.Context) ([]*models.SectionUpload, error) {
	var uploads []*models.SectionUpload
	if err := r.db.WithContext(ctx).Find(&uploads).Error; err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}
