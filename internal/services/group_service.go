package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/SEACET-CSE/edugroup-service/internal/cache"
	"github.com/SEACET-CSE/edugroup-service/internal/events"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

type groupService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	cacheManager   *cache.CacheManager

	// allocMu serializes the allocator's read-modify-write so two joins
	// cannot both observe the same free seat. The storage transaction
	// guards cross-process writers.
	allocMu sync.Mutex
}

func NewGroupService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	eventPublisher events.EventPublisher,
	cacheManager *cache.CacheManager,
) GroupService {
	return &groupService{
		repo:           repo,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
		cacheManager:   cacheManager,
	}
}

// JoinGroup places studentID into the first batch with room for optionID.
// Batch selection is strictly lowest-number-with-room; seats are never
// balanced across batches. The member append, the group lock flip and the
// student lock flip commit together.
func (s *groupService) JoinGroup(ctx context.Context, studentID string, optionID int) (*models.Group, error) {
	if optionID < 1 || optionID > models.OptionCount {
		return nil, ErrOptionNotFound
	}

	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	var (
		target *models.Group
		locked bool
	)

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		user, err := tx.User().GetByID(ctx, studentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get student: %w", err)
		}
		if !user.IsStudent() {
			return NewPermissionError(studentID, "group", "join", "only students join groups")
		}
		if user.PreferencesLocked {
			return ErrAlreadyLocked
		}

		// The lock flag alone guarded this in the reference system; check
		// actual membership as well so a torn state can never double-place
		// a student.
		if _, err := tx.Group().GetByMember(ctx, studentID); err == nil {
			return ErrAlreadyLocked
		} else if !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to check existing membership: %w", err)
		}

		if _, err := tx.Option().GetByID(ctx, optionID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrOptionNotFound
			}
			return fmt.Errorf("failed to get option: %w", err)
		}

		target, err = s.findOpenCell(ctx, tx, optionID)
		if err != nil {
			return err
		}

		target.MemberIDs = append(target.MemberIDs, studentID)
		if len(target.MemberIDs) >= models.GroupCapacity {
			target.IsLocked = true
			locked = true
		}

		if err := tx.Group().Update(ctx, target); err != nil {
			return err
		}

		if err := tx.User().SetPreferencesLocked(ctx, studentID, true); err != nil {
			return fmt.Errorf("failed to lock student preferences: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateOptionCache(ctx, s.cacheManager, optionID)

	s.logger.Info("Student allocated to group",
		"student_id", studentID,
		"group_id", target.ID,
		"option_id", optionID,
		"batch", target.BatchNumber,
		"members", len(target.MemberIDs))

	s.publishEvent(ctx, events.EventGroupMemberJoined, events.GroupMemberJoinedEvent{
		GroupID:     target.ID,
		StudentID:   studentID,
		OptionID:    optionID,
		BatchNumber: target.BatchNumber,
		Members:     len(target.MemberIDs),
	})
	if locked {
		s.publishEvent(ctx, events.EventGroupLocked, events.GroupLockedEvent{
			GroupID:     target.ID,
			OptionID:    optionID,
			BatchNumber: target.BatchNumber,
		})
	}

	return target, nil
}

// findOpenCell scans batches 1..4 in order and returns the first with a
// free seat, materializing the cell on first touch. Cells past the first
// open one are never created.
func (s *groupService) findOpenCell(ctx context.Context, tx repositories.Repository, optionID int) (*models.Group, error) {
	for batch := 1; batch <= models.MaxBatches; batch++ {
		group, err := tx.Group().GetByCell(ctx, batch, optionID)
		if err != nil {
			if !repositories.IsNotFoundError(err) {
				return nil, fmt.Errorf("failed to get group cell: %w", err)
			}

			group = &models.Group{
				ID:          uuid.New().String(),
				BatchNumber: batch,
				OptionID:    optionID,
				Name:        fmt.Sprintf("Group %d-B%d", optionID, batch),
				MemberIDs:   nil,
				IsLocked:    false,
			}
			if err := tx.Group().Create(ctx, group); err != nil {
				return nil, fmt.Errorf("failed to create group cell: %w", err)
			}
			return group, nil
		}

		if !group.IsFull() {
			return group, nil
		}
	}

	return nil, ErrAllBatchesFull
}

func (s *groupService) UpdateGroupName(ctx context.Context, groupID, name string) error {
	name = strings.TrimSpace(name)
	if err := s.validator.Validate(&UpdateGroupNameRequest{Name: name}); err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		group, err := tx.Group().GetByID(ctx, groupID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrGroupNotFound
			}
			return fmt.Errorf("failed to get group: %w", err)
		}

		if group.IsLocked {
			return ErrGroupLocked
		}

		group.Name = name
		if err := tx.Group().Update(ctx, group); err != nil {
			return err
		}

		s.logger.Info("Group renamed", "group_id", groupID, "name", name)
		return nil
	})
}

func (s *groupService) GetByID(ctx context.Context, groupID string) (*GroupResponse, error) {
	group, err := s.repo.Group().GetByID(ctx, groupID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return s.buildGroupResponse(ctx, group)
}

func (s *groupService) GetGroupForStudent(ctx context.Context, studentID string) (*GroupResponse, error) {
	group, err := s.repo.Group().GetByMember(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group for student: %w", err)
	}
	return s.buildGroupResponse(ctx, group)
}

func (s *groupService) GetAllGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.repo.Group().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// buildGroupResponse resolves member ids to names, preserving join order.
func (s *groupService) buildGroupResponse(ctx context.Context, group *models.Group) (*GroupResponse, error) {
	users, err := s.repo.User().GetByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group members: %w", err)
	}

	byID := make(map[string]*models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	members := make([]GroupMember, 0, len(group.MemberIDs))
	for _, id := range group.MemberIDs {
		if user, ok := byID[id]; ok {
			members = append(members, GroupMember{ID: user.ID, Name: user.Name, Email: user.Email})
		}
	}

	return &GroupResponse{Group: group, Members: members}, nil
}

func (s *groupService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event", "type", eventType, "error", err)
	}
}
