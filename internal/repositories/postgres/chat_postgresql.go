package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
)

type ChatPostgreSQL struct {
	db *gorm.DB
}

func NewChatPostgreSQL(db *gorm.DB) repositories.ChatRepository {
	return &ChatPostgreSQL{db: db}
}

func (r *ChatPostgreSQL) Create(ctx context.Context, message *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *ChatPostgreSQL) ListByGroup(ctx context.Context, groupID string) ([]*models.ChatMessage, error) {
	// created_at breaks timestamp ties in insertion order.
	var messages []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("timestamp ASC, created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}
