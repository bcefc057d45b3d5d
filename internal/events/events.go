package events

import "time"

// EventSource identifies this service in published events.
const EventSource = "edugroup-service"

// Event types published on the group/submission/chat lifecycle.
const (
	EventGroupMemberJoined = "group.member_joined"
	EventGroupLocked       = "group.locked"
	EventChatMessageSent   = "chat.message_sent"
	EventRemarkAdded       = "upload.remark_added"
)

// Event is the envelope published to the message broker.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// GroupMemberJoinedEvent is emitted after a successful allocation.
type GroupMemberJoinedEvent struct {
	GroupID     string `json:"group_id"`
	StudentID   string `json:"student_id"`
	OptionID    int    `json:"option_id"`
	BatchNumber int    `json:"batch_number"`
	Members     int    `json:"members"`
}

// GroupLockedEvent is emitted when a group reaches capacity.
type GroupLockedEvent struct {
	GroupID     string `json:"group_id"`
	OptionID    int    `json:"option_id"`
	BatchNumber int    `json:"batch_number"`
}

// ChatMessageSentEvent is emitted for every accepted chat message.
type ChatMessageSentEvent struct {
	MessageID string `json:"message_id"`
	GroupID   string `json:"group_id"`
	UserID    string `json:"user_id"`
}

// RemarkAddedEvent is emitted when an instructor attaches a remark.
type RemarkAddedEvent struct {
	StudentID string `json:"student_id"`
	SectionID int    `json:"section_id"`
}
