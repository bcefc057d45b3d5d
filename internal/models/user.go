package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:255"`
	Name  string   `json:"name" gorm:"not null;size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;size:20;index"`

	// Reference behavior stores the password in the clear; hashing is the
	// auth collaborator's concern, not this service's.
	Password string `json:"-" gorm:"not null;size:255"`

	// Flipped exactly once, by the allocator, when the student commits to
	// a group. Never reversed.
	PreferencesLocked bool `json:"preferences_locked" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
