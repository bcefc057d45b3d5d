package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// MaxBatches is the number of parallel capacity slots per topic. No
	// fifth batch is ever created.
	MaxBatches = 4

	// GroupCapacity is the seat count of a single (batch, option) cell.
	GroupCapacity = 6
)

// Group is the materialized (batchNumber, optionID) cell. At most one row
// exists per pair; rows are created lazily on the first join into the cell.
type Group struct {
	ID          string `json:"id" gorm:"primaryKey;size:255"`
	BatchNumber int    `json:"batch_number" gorm:"not null;uniqueIndex:idx_groups_batch_option" validate:"min=1,max=4"`
	OptionID    int    `json:"option_id" gorm:"not null;uniqueIndex:idx_groups_batch_option" validate:"min=1,max=12"`
	Name        string `json:"name" gorm:"not null;size:100"`

	// Ordered member user ids, insertion order preserved.
	MemberIDs datatypes.JSONSlice[string] `json:"member_ids" gorm:"not null"`

	// IsLocked holds iff len(MemberIDs) == GroupCapacity. The name becomes
	// immutable once locked.
	IsLocked bool `json:"is_locked" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

func (g *Group) IsFull() bool {
	return len(g.MemberIDs) >= GroupCapacity
}

func (g *Group) Remaining() int {
	return GroupCapacity - len(g.MemberIDs)
}

func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
