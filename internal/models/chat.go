package models

import "time"

// ChatMessage is an append-only per-group message. UserName is a snapshot
// of the sender's name at send time; no edit or delete exists.
type ChatMessage struct {
	ID      string `json:"id" gorm:"primaryKey;size:255"`
	GroupID string `json:"group_id" gorm:"not null;size:255;index"`
	UserID  string `json:"user_id" gorm:"not null;size:255"`

	UserName string `json:"user_name" gorm:"not null;size:100"`
	Message  string `json:"message" gorm:"not null;type:text"`

	// Unix milliseconds. Ordering is ascending, ties stable by insertion.
	Timestamp int64 `json:"timestamp" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
