package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportGroups renders the group roster as an xlsx workbook, one row per
// member in join order.
func (s *exportService) ExportGroups(ctx context.Context) ([]byte, error) {
	groups, err := s.repo.Group().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	options, err := s.repo.Option().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	titleByOption := make(map[int]string, len(options))
	for _, option := range options {
		titleByOption[option.ID] = option.Title
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Groups"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Group", "Topic", "Batch", "Seats", "Locked", "Member", "Email"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, group := range groups {
		members, err := s.repo.User().GetByIDs(ctx, group.MemberIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve members: %w", err)
		}
		byID := make(map[string]*models.User, len(members))
		for _, member := range members {
			byID[member.ID] = member
		}

		seats := fmt.Sprintf("%d/%d", len(group.MemberIDs), models.GroupCapacity)
		for _, memberID := range group.MemberIDs {
			name, email := memberID, ""
			if user, ok := byID[memberID]; ok {
				name, email = user.Name, user.Email
			}

			values := []interface{}{
				group.Name,
				titleByOption[group.OptionID],
				group.BatchNumber,
				seats,
				group.IsLocked,
				name,
				email,
			}
			for i, value := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Group roster exported", "rows", row-2)
	return buf.Bytes(), nil
}

// ExportUploads renders the submission ledger: one row per student, one
// column pair (file, remark) per section.
func (s *exportService) ExportUploads(ctx context.Context) ([]byte, error) {
	students, err := s.repo.User().ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	uploads, err := s.repo.Upload().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	type key struct {
		studentID string
		sectionID int
	}
	byKey := make(map[key]*models.SectionUpload, len(uploads))
	for _, upload := range uploads {
		byKey[key{upload.StudentID, upload.SectionID}] = upload
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Submissions"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Student", "Email"}
	for _, section := range models.ProjectSections {
		headers = append(headers, section.Label, section.Label+" remark")
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, student := range students {
		values := []interface{}{student.Name, student.Email}
		for _, section := range models.ProjectSections {
			upload := byKey[key{student.ID, section.ID}]
			if upload == nil {
				values = append(values, "", "")
				continue
			}
			values = append(values, upload.FileName, upload.Remark)
		}

		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Submission ledger exported", "students", len(students))
	return buf.Bytes(), nil
}
