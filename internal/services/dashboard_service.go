package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
)

type dashboardService struct {
	repo          repositories.Repository
	optionService OptionService
	logger        *slog.Logger
}

func NewDashboardService(repo repositories.Repository, optionService OptionService, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:          repo,
		optionService: optionService,
		logger:        logger,
	}
}

// GetAdminStats aggregates the instructor overview: student lock counts,
// per-topic fill levels and per-section submission counts.
func (s *dashboardService) GetAdminStats(ctx context.Context) (*AdminStatsResponse, error) {
	students, err := s.repo.User().ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	var lockedStudents int64
	for _, student := range students {
		if student.PreferencesLocked {
			lockedStudents++
		}
	}

	groups, err := s.repo.Group().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var lockedGroups int64
	membersByOption := make(map[int]int)
	groupsByOption := make(map[int]int)
	for _, group := range groups {
		if group.IsLocked {
			lockedGroups++
		}
		membersByOption[group.OptionID] += len(group.MemberIDs)
		groupsByOption[group.OptionID]++
	}

	options, err := s.repo.Option().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}

	optionStats := make([]OptionFillStats, 0, len(options))
	for _, option := range options {
		stats, err := s.optionService.GetOptionStats(ctx, option.ID)
		if err != nil {
			return nil, err
		}
		optionStats = append(optionStats, OptionFillStats{
			OptionID: option.ID,
			Title:    option.Title,
			Members:  membersByOption[option.ID],
			Groups:   groupsByOption[option.ID],
			Stats:    *stats,
		})
	}

	uploads, err := s.repo.Upload().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	submissionsBySection := make(map[int]int)
	remarksBySection := make(map[int]int)
	for _, upload := range uploads {
		if upload.HasFile() {
			submissionsBySection[upload.SectionID]++
		}
		if upload.HasRemark() {
			remarksBySection[upload.SectionID]++
		}
	}

	sectionStats := make([]SectionUploadStat, 0, len(models.ProjectSections))
	for _, section := range models.ProjectSections {
		sectionStats = append(sectionStats, SectionUploadStat{
			SectionID:   section.ID,
			Label:       section.Label,
			Submissions: submissionsBySection[section.ID],
			Remarks:     remarksBySection[section.ID],
		})
	}

	return &AdminStatsResponse{
		TotalStudents:  int64(len(students)),
		LockedStudents: lockedStudents,
		TotalGroups:    int64(len(groups)),
		LockedGroups:   lockedGroups,
		Options:        optionStats,
		Sections:       sectionStats,
	}, nil
}
