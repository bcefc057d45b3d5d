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

type chatService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewChatService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	eventPublisher events.EventPublisher,
) ChatService {
	return &chatService{
		repo:           repo,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// SendMessage appends to the group's log with a fresh id and the current
// timestamp. The sender's name is snapshotted; later renames do not touch
// history.
func (s *chatService) SendMessage(ctx context.Context, groupID, userID, userName, message string) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if errs := s.validator.GetBusinessValidator().ValidateMessage(message); len(errs) > 0 {
		return nil, ErrEmptyMessage
	}

	if _, err := s.repo.Group().GetByID(ctx, groupID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	chatMessage := &models.ChatMessage{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		UserID:    userID,
		UserName:  userName,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}

	if err := s.repo.Chat().Create(ctx, chatMessage); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.EventChatMessageSent, events.ChatMessageSentEvent{
			MessageID: chatMessage.ID,
			GroupID:   groupID,
			UserID:    userID,
		}); err != nil {
			s.logger.Error("Failed to publish event", "type", events.EventChatMessageSent, "error", err)
		}
	}

	return chatMessage, nil
}

// GetGroupChat returns the group's messages sorted by timestamp ascending,
// stable for equal timestamps by insertion order.
func (s *chatService) GetGroupChat(ctx context.Context, groupID string) ([]*models.ChatMessage, error) {
	messages, err := s.repo.Chat().ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group chat: %w", err)
	}
	return messages, nil
}
