package validator

import "github.com/SEACET-CSE/edugroup-service/internal/models"

// RegisterRequest is the registration payload from the auth surface.
type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=4,max=255"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
}

// LoginRequest is the credential check payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JoinGroupRequest is a student's topic choice.
type JoinGroupRequest struct {
	OptionID int `json:"option_id" validate:"required,option_id"`
}

// UpdateGroupNameRequest renames an unlocked group.
type UpdateGroupNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// OptionUpdateRequest edits a topic's title/description (instructor only).
type OptionUpdateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UploadFileRequest records a submission reference for a section. The file
// itself is stored elsewhere; only the name/URL token reaches this service.
type UploadFileRequest struct {
	SectionID int    `json:"section_id" validate:"required,section_id"`
	FileName  string `json:"file_name" validate:"required,min=1,max=255"`
}

// AddRemarkRequest attaches an instructor remark to a (student, section)
// cell, creating the record if no upload exists yet.
type AddRemarkRequest struct {
	Remark string `json:"remark" validate:"required,min=1,max=2000"`
}

// SendMessageRequest posts a message to a group chat.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}
