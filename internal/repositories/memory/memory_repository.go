// Package memory provides an in-memory Repository backend. It backs the
// service tests and mirrors the single-writer semantics of the reference
// system: WithTransaction holds the store lock for the whole callback.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
)

type uploadKey struct {
	studentID string
	sectionID int
}

type store struct {
	mu sync.Mutex

	users   map[string]*models.User
	groups  map[string]*models.Group
	options map[int]*models.PreferenceOption
	uploads map[uploadKey]*models.SectionUpload
	chats   map[string][]*models.ChatMessage
}

// MemoryRepository implements repositories.Repository over process-local
// maps. Transaction-bound instances share the store but skip locking, so
// nested calls inside WithTransaction do not deadlock.
type MemoryRepository struct {
	store *store
	inTx  bool
}

func NewMemoryRepository() *MemoryRepository {
	s := &store{
		users:   make(map[string]*models.User),
		groups:  make(map[string]*models.Group),
		options: make(map[int]*models.PreferenceOption),
		uploads: make(map[uploadKey]*models.SectionUpload),
		chats:   make(map[string][]*models.ChatMessage),
	}

	// Seed the fixed topic catalog, matching first-run behavior.
	for i := 1; i <= models.OptionCount; i++ {
		s.options[i] = &models.PreferenceOption{
			ID:          i,
			Title:       fmt.Sprintf("Research Topic %d", i),
			Description: fmt.Sprintf("Focus area covering specific aspects of topic %d.", i),
		}
	}

	return &MemoryRepository{store: s}
}

func (r *MemoryRepository) lock() {
	if !r.inTx {
		r.store.mu.Lock()
	}
}

func (r *MemoryRepository) unlock() {
	if !r.inTx {
		r.store.mu.Unlock()
	}
}

func (r *MemoryRepository) User() repositories.UserRepository     { return (*userMemory)(r) }
func (r *MemoryRepository) Group() repositories.GroupRepository   { return (*groupMemory)(r) }
func (r *MemoryRepository) Option() repositories.OptionRepository { return (*optionMemory)(r) }
func (r *MemoryRepository) Upload() repositories.UploadRepository { return (*uploadMemory)(r) }
func (r *MemoryRepository) Chat() repositories.ChatRepository     { return (*chatMemory)(r) }

func (r *MemoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return fn(&MemoryRepository{store: r.store, inTx: true})
}

func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }

// ===== USERS =====

type userMemory MemoryRepository

func (r *userMemory) lock()   { (*MemoryRepository)(r).lock() }
func (r *userMemory) unlock() { (*MemoryRepository)(r).unlock() }

func (r *userMemory) Create(ctx context.Context, user *models.User) error {
	r.lock()
	defer r.unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}

	u := *user
	r.store.users[u.ID] = &u
	return nil
}

func (r *userMemory) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.lock()
	defer r.unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (r *userMemory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.lock()
	defer r.unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userMemory) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.lock()
	defer r.unlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.store.users[id]; ok {
			u := *user
			users = append(users, &u)
		}
	}
	return users, nil
}

func (r *userMemory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.lock()
	defer r.unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userMemory) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	r.lock()
	defer r.unlock()

	var users []*models.User
	for _, user := range r.store.users {
		if user.Role == role {
			u := *user
			users = append(users, &u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userMemory) SetPreferencesLocked(ctx context.Context, id string, locked bool) error {
	r.lock()
	defer r.unlock()

	user, ok := r.store.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.PreferencesLocked = locked
	return nil
}

// ===== GROUPS =====

type groupMemory MemoryRepository

func (r *groupMemory) lock()   { (*MemoryRepository)(r).lock() }
func (r *groupMemory) unlock() { (*MemoryRepository)(r).unlock() }

func copyGroup(g *models.Group) *models.Group {
	cp := *g
	cp.MemberIDs = append(cp.MemberIDs[:0:0], g.MemberIDs...)
	return &cp
}

func (r *groupMemory) Create(ctx context.Context, group *models.Group) error {
	r.lock()
	defer r.unlock()

	for _, existing := range r.store.groups {
		if existing.BatchNumber == group.BatchNumber && existing.OptionID == group.OptionID {
			return repositories.ErrDuplicateKey
		}
	}

	r.store.groups[group.ID] = copyGroup(group)
	return nil
}

func (r *groupMemory) GetByID(ctx context.Context, id string) (*models.Group, error) {
	r.lock()
	defer r.unlock()

	group, ok := r.store.groups[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyGroup(group), nil
}

func (r *groupMemory) GetByCell(ctx context.Context, batchNumber, optionID int) (*models.Group, error) {
	r.lock()
	defer r.unlock()

	for _, group := range r.store.groups {
		if group.BatchNumber == batchNumber && group.OptionID == optionID {
			return copyGroup(group), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *groupMemory) GetByMember(ctx context.Context, userID string) (*models.Group, error) {
	r.lock()
	defer r.unlock()

	for _, group := range r.store.groups {
		if group.HasMember(userID) {
			return copyGroup(group), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *groupMemory) ListByOption(ctx context.Context, optionID int) ([]*models.Group, error) {
	r.lock()
	defer r.unlock()

	var groups []*models.Group
	for _, group := range r.store.groups {
		if group.OptionID == optionID {
			groups = append(groups, copyGroup(group))
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].BatchNumber < groups[j].BatchNumber })
	return groups, nil
}

func (r *groupMemory) List(ctx context.Context) ([]*models.Group, error) {
	r.lock()
	defer r.unlock()

	groups := make([]*models.Group, 0, len(r.store.groups))
	for _, group := range r.store.groups {
		groups = append(groups, copyGroup(group))
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].OptionID != groups[j].OptionID {
			return groups[i].OptionID < groups[j].OptionID
		}
		return groups[i].BatchNumber < groups[j].BatchNumber
	})
	return groups, nil
}

func (r *groupMemory) Update(ctx context.Context, group *models.Group) error {
	r.lock()
	defer r.unlock()

	if _, ok := r.store.groups[group.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.groups[group.ID] = copyGroup(group)
	return nil
}

// ===== OPTIONS =====

type optionMemory MemoryRepository

func (r *optionMemory) lock()   { (*MemoryRepository)(r).lock() }
func (r *optionMemory) unlock() { (*MemoryRepository)(r).unlock() }

func (r *optionMemory) GetByID(ctx context.Context, id int) (*models.PreferenceOption, error) {
	r.lock()
	defer r.unlock()

	option, ok := r.store.options[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	o := *option
	return &o, nil
}

func (r *optionMemory) List(ctx context.Context) ([]*models.PreferenceOption, error) {
	r.lock()
	defer r.unlock()

	options := make([]*models.PreferenceOption, 0, len(r.store.options))
	for _, option := range r.store.options {
		o := *option
		options = append(options, &o)
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return options, nil
}

func (r *optionMemory) Update(ctx context.Context, option *models.PreferenceOption) error {
	r.lock()
	defer r.unlock()

	existing, ok := r.store.options[option.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Title = option.Title
	existing.Description = option.Description
	return nil
}

// ===== UPLOADS =====

type uploadMemory MemoryRepository

func (r *uploadMemory) lock()   { (*MemoryRepository)(r).lock() }
func (r *uploadMemory) unlock() { (*MemoryRepository)(r).unlock() }

func (r *uploadMemory) Get(ctx context.Context, studentID string, sectionID int) (*models.SectionUpload, error) {
	r.lock()
	defer r.unlock()

	upload, ok := r.store.uploads[uploadKey{studentID, sectionID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u := *upload
	return &u, nil
}

func (r *uploadMemory) Save(ctx context.Context, upload *models.SectionUpload) error {
	r.lock()
	defer r.unlock()

	u := *upload
	r.store.uploads[uploadKey{upload.StudentID, upload.SectionID}] = &u
	return nil
}

func (r *uploadMemory) Delete(ctx context.Context, studentID string, sectionID int) error {
	r.lock()
	defer r.unlock()

	delete(r.store.uploads, uploadKey{studentID, sectionID})
	return nil
}

func (r *uploadMemory) ListByStudent(ctx context.Context, studentID string) ([]*models.SectionUpload, error) {
	r.lock()
	defer r.unlock()

	var uploads []*models.SectionUpload
	for key, upload := range r.store.uploads {
		if key.studentID == studentID {
			u := *upload
			uploads = append(uploads, &u)
		}
	}
	sort.Slice(uploads, func(i, j int) bool { return uploads[i].SectionID < uploads[j].SectionID })
	return uploads, nil
}

func (r *uploadMemory) List(ctx context.Context) ([]*models.SectionUpload, error) {
	r.lock()
	defer r.unlock()

	uploads := make([]*models.SectionUpload, 0, len(r.store.uploads))
	for _, upload := range r.store.uploads {
		u := *upload
		uploads = append(uploads, &u)
	}
	sort.Slice(uploads, func(i, j int) bool {
		if uploads[i].StudentID != uploads[j].StudentID {
			return uploads[i].StudentID < uploads[j].StudentID
		}
		return uploads[i].SectionID < uploads[j].SectionID
	})
	return uploads, nil
}

// ===== CHAT =====

type chatMemory MemoryRepository

func (r *chatMemory) lock()   { (*MemoryRepository)(r).lock() }
func (r *chatMemory) unlock() { (*MemoryRepository)(r).unlock() }

func (r *chatMemory) Create(ctx context.Context, message *models.ChatMessage) error {
	r.lock()
	defer r.unlock()

	m := *message
	r.store.chats[m.GroupID] = append(r.store.chats[m.GroupID], &m)
	return nil
}

func (r *chatMemory) ListByGroup(ctx context.Context, groupID string) ([]*models.ChatMessage, error) {
	r.lock()
	defer r.unlock()

	stored := r.store.chats[groupID]
	messages := make([]*models.ChatMessage, 0, len(stored))
	for _, message := range stored {
		m := *message
		messages = append(messages, &m)
	}

	// Stable sort keeps insertion order for equal timestamps.
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].Timestamp < messages[j].Timestamp })
	return messages, nil
}
