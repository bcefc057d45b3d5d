package services

import (
	"context"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type JoinGroupRequest = validator.JoinGroupRequest
type UpdateGroupNameRequest = validator.UpdateGroupNameRequest
type OptionUpdateRequest = validator.OptionUpdateRequest
type UploadFileRequest = validator.UploadFileRequest
type AddRemarkRequest = validator.AddRemarkRequest
type SendMessageRequest = validator.SendMessageRequest

// GroupResponse decorates a group with resolved member details for display.
type GroupResponse struct {
	*models.Group
	Members []GroupMember `json:"members"`
}

type GroupMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OptionWithStats pairs a topic with its current availability, the shape
// the selection UI polls.
type OptionWithStats struct {
	*models.PreferenceOption
	Stats models.OptionStats `json:"stats"`
}

// ===== DASHBOARD DTOs =====

type AdminStatsResponse struct {
	TotalStudents  int64               `json:"total_students"`
	LockedStudents int64               `json:"locked_students"`
	TotalGroups    int64               `json:"total_groups"`
	LockedGroups   int64               `json:"locked_groups"`
	Options        []OptionFillStats   `json:"options"`
	Sections       []SectionUploadStat `json:"sections"`
}

type OptionFillStats struct {
	OptionID int    `json:"option_id"`
	Title    string `json:"title"`
	Members  int    `json:"members"`
	Groups   int    `json:"groups"`
	// Availability of the next open batch, {false, 4, 0} when full.
	Stats models.OptionStats `json:"stats"`
}

type SectionUploadStat struct {
	SectionID   int    `json:"section_id"`
	Label       string `json:"label"`
	Submissions int    `json:"submissions"`
	Remarks     int    `json:"remarks"`
}

// ===== SERVICE INTERFACES =====

// AuthService owns registration and credential checks. The wider session
// layer is an external collaborator; this service only produces User
// records with the invariants the allocator depends on.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
	GetStudent(ctx context.Context, id string) (*models.User, error)
	ListStudents(ctx context.Context) ([]*models.User, error)
}

// GroupService is the allocator plus group reads.
type GroupService interface {
	// JoinGroup places the student into the first open batch for the topic
	// and flips the student's one-shot lock. Fails with ErrAlreadyLocked or
	// ErrAllBatchesFull.
	JoinGroup(ctx context.Context, studentID string, optionID int) (*models.Group, error)

	// UpdateGroupName renames an unlocked group. Fails with
	// ErrGroupNotFound or ErrGroupLocked.
	UpdateGroupName(ctx context.Context, groupID, name string) error

	GetByID(ctx context.Context, groupID string) (*GroupResponse, error)
	GetGroupForStudent(ctx context.Context, studentID string) (*GroupResponse, error)
	GetAllGroups(ctx context.Context) ([]*models.Group, error)
}

// OptionService owns the topic catalog and the availability projection.
type OptionService interface {
	GetOptions(ctx context.Context) ([]*models.PreferenceOption, error)
	GetOptionsWithStats(ctx context.Context) ([]*OptionWithStats, error)
	UpdateOption(ctx context.Context, id int, req *OptionUpdateRequest) (*models.PreferenceOption, error)

	// GetOptionStats replays the allocator's batch scan as a pure read; it
	// never materializes group records.
	GetOptionStats(ctx context.Context, optionID int) (*models.OptionStats, error)
}

// UploadService is the submission ledger.
type UploadService interface {
	UploadFile(ctx context.Context, studentID string, req *UploadFileRequest) (*models.SectionUpload, error)
	DeleteUpload(ctx context.Context, studentID string, sectionID int) error
	AddRemark(ctx context.Context, studentID string, sectionID int, remark string) (*models.SectionUpload, error)
	GetUploadsForStudent(ctx context.Context, studentID string) ([]*models.SectionUpload, error)
	GetAllUploads(ctx context.Context) ([]*models.SectionUpload, error)
	GetSections() []models.ProjectSection
}

// ChatService is the append-only group chat log.
type ChatService interface {
	SendMessage(ctx context.Context, groupID, userID, userName, message string) (*models.ChatMessage, error)
	GetGroupChat(ctx context.Context, groupID string) ([]*models.ChatMessage, error)
}

// DashboardService aggregates the admin overview.
type DashboardService interface {
	GetAdminStats(ctx context.Context) (*AdminStatsResponse, error)
}

// ExportService renders instructor downloads.
type ExportService interface {
	ExportGroups(ctx context.Context) ([]byte, error)
	ExportUploads(ctx context.Context) ([]byte, error)
}

// ServiceManager wires and owns all services.
type ServiceManager interface {
	Auth() AuthService
	Group() GroupService
	Option() OptionService
	Upload() UploadService
	Chat() ChatService
	Dashboard() DashboardService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
