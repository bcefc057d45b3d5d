package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.Role == models.RoleAdmin && !validator.IsAdminEmail(email) {
		return nil, ErrInvalidAdminEmail
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		Password:          req.Password,
		Role:              req.Role,
		PreferencesLocked: false,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		// Two registrations can race past the existence check; the unique
		// index is the authority.
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Plaintext comparison mirrors the reference behavior; hardening is the
	// auth collaborator's concern.
	if user.Password != req.Password {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) GetStudent(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return user, nil
}

func (s *authService) ListStudents(ctx context.Context) ([]*models.User, error) {
	students, err := s.repo.User().ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}
