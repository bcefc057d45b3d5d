package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SEACET-CSE/edugroup-service/internal/events"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

type uploadService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewUploadService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	eventPublisher events.EventPublisher,
) UploadService {
	return &uploadService{
		repo:           repo,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// UploadFile upserts the (student, section) record. An existing record —
// possibly remark-only — keeps its remark; only the file fields change.
func (s *uploadService) UploadFile(ctx context.Context, studentID string, req *UploadFileRequest) (*models.SectionUpload, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var saved *models.SectionUpload
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		now := time.Now().UTC()

		upload, err := tx.Upload().Get(ctx, studentID, req.SectionID)
		if err != nil {
			if !repositories.IsNotFoundError(err) {
				return fmt.Errorf("failed to get upload: %w", err)
			}
			upload = &models.SectionUpload{
				StudentID: studentID,
				SectionID: req.SectionID,
			}
		}

		upload.FileName = req.FileName
		upload.FileURL = s.referenceToken(studentID, req.SectionID, req.FileName)
		upload.UploadedAt = &now

		if err := tx.Upload().Save(ctx, upload); err != nil {
			return err
		}

		saved = upload
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("File recorded",
		"student_id", studentID,
		"section_id", req.SectionID,
		"file_name", req.FileName)
	return saved, nil
}

// DeleteUpload applies the retraction decision table:
//
//	no record      -> no-op
//	remark present -> soft delete (clear file fields, keep record)
//	no remark      -> hard delete (remove record)
//
// A remark must stay addressable after the student retracts the file.
func (s *uploadService) DeleteUpload(ctx context.Context, studentID string, sectionID int) error {
	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		upload, err := tx.Upload().Get(ctx, studentID, sectionID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil
			}
			return fmt.Errorf("failed to get upload: %w", err)
		}

		if upload.HasRemark() {
			upload.FileName = ""
			upload.FileURL = ""
			upload.UploadedAt = nil
			if err := tx.Upload().Save(ctx, upload); err != nil {
				return err
			}
			s.logger.Info("Upload soft-deleted", "student_id", studentID, "section_id", sectionID)
			return nil
		}

		if err := tx.Upload().Delete(ctx, studentID, sectionID); err != nil {
			return err
		}
		s.logger.Info("Upload hard-deleted", "student_id", studentID, "section_id", sectionID)
		return nil
	})
}

// AddRemark upserts the instructor remark, creating a file-less record for
// the comment-before-submission case. Missing targets are create-on-write,
// never an error.
func (s *uploadService) AddRemark(ctx context.Context, studentID string, sectionID int, remark string) (*models.SectionUpload, error) {
	remark = strings.TrimSpace(remark)
	if err := s.validator.Validate(&AddRemarkRequest{Remark: remark}); err != nil {
		return nil, err
	}
	if sectionID < 1 || sectionID > len(models.ProjectSections) {
		return nil, validator.ValidationErrors{{
			Field:   "section_id",
			Message: fmt.Sprintf("must be a section id between 1 and %d", len(models.ProjectSections)),
			Value:   sectionID,
			Rule:    "section_id",
		}}
	}

	var saved *models.SectionUpload
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		upload, err := tx.Upload().Get(ctx, studentID, sectionID)
		if err != nil {
			if !repositories.IsNotFoundError(err) {
				return fmt.Errorf("failed to get upload: %w", err)
			}
			upload = &models.SectionUpload{
				StudentID: studentID,
				SectionID: sectionID,
			}
		}

		upload.Remark = remark
		if err := tx.Upload().Save(ctx, upload); err != nil {
			return err
		}

		saved = upload
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventRemarkAdded, events.RemarkAddedEvent{
		StudentID: studentID,
		SectionID: sectionID,
	})

	s.logger.Info("Remark added", "student_id", studentID, "section_id", sectionID)
	return saved, nil
}

func (s *uploadService) GetUploadsForStudent(ctx context.Context, studentID string) ([]*models.SectionUpload, error) {
	uploads, err := s.repo.Upload().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads for student: %w", err)
	}
	return uploads, nil
}

func (s *uploadService) GetAllUploads(ctx context.Context) ([]*models.SectionUpload, error) {
	uploads, err := s.repo.Upload().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}

func (s *uploadService) GetSections() []models.ProjectSection {
	sections := make([]models.ProjectSection, len(models.ProjectSections))
	copy(sections, models.ProjectSections)
	return sections
}

// referenceToken builds the opaque file reference. Bytes live in the
// external file store; this service only ever records the token.
func (s *uploadService) referenceToken(studentID string, sectionID int, fileName string) string {
	return fmt.Sprintf("upload://%s/%d/%s/%s", studentID, sectionID, uuid.New().String(), fileName)
}

func (s *uploadService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
