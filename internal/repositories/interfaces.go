package repositories

import (
	"context"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

// UserRepository persists registered users. Email uniqueness is enforced
// here (unique index in the Postgres backend, scan in the memory backend).
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	// SetPreferencesLocked flips the student's one-shot lock flag. Only the
	// allocator calls this, and only STUDENT -> true.
	SetPreferencesLocked(ctx context.Context, id string, locked bool) error
}

// GroupRepository persists the (batch, option) cells.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id string) (*models.Group, error)

	// GetByCell looks up the group for a (batchNumber, optionID) pair.
	// Returns ErrNotFound when the cell has never been materialized. Inside
	// a transaction the Postgres backend takes a row lock on the cell.
	GetByCell(ctx context.Context, batchNumber, optionID int) (*models.Group, error)

	// GetByMember finds the group containing the given user id, if any.
	GetByMember(ctx context.Context, userID string) (*models.Group, error)

	ListByOption(ctx context.Context, optionID int) ([]*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
}

// OptionRepository reads and edits the fixed 12-topic catalog. Rows are
// seeded at first run; ids and cardinality never change afterwards.
type OptionRepository interface {
	GetByID(ctx context.Context, id int) (*models.PreferenceOption, error)
	List(ctx context.Context) ([]*models.PreferenceOption, error)
	Update(ctx context.Context, option *models.PreferenceOption) error
}

// UploadRepository persists the submission ledger, keyed by
// (studentID, sectionID).
type UploadRepository interface {
	Get(ctx context.Context, studentID string, sectionID int) (*models.SectionUpload, error)
	Save(ctx context.Context, upload *models.SectionUpload) error
	Delete(ctx context.Context, studentID string, sectionID int) error
	ListByStudent(ctx context.Context, studentID string) ([]*models.SectionUpload, error)
	List(ctx context.Context) ([]*models.SectionUpload, error)
}

// ChatRepository persists the append-only group chat log.
type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error

	// ListByGroup returns messages ordered by timestamp ascending, stable
	// for equal timestamps by insertion order.
	ListByGroup(ctx context.Context, groupID string) ([]*models.ChatMessage, error)
}
