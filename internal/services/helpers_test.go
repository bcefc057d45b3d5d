package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/SEACET-CSE/edugroup-service/internal/cache"
	"github.com/SEACET-CSE/edugroup-service/internal/events"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories/memory"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

// testEnv wires all services over the in-memory backend with a recording
// event publisher and no Redis.
type testEnv struct {
	repo      *memory.MemoryRepository
	publisher *events.MockEventPublisher

	auth      AuthService
	groups    GroupService
	options   OptionService
	uploads   UploadService
	chat      ChatService
	dashboard DashboardService
	exports   ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.NewMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validator.New()
	publisher := events.NewMockEventPublisher(logger)
	cacheManager := cache.NewCacheManager(nil)

	optionService := NewOptionService(repo, logger, v, cacheManager)

	return &testEnv{
		repo:      repo,
		publisher: publisher,
		auth:      NewAuthService(repo, logger, v),
		groups:    NewGroupService(repo, logger, v, publisher, cacheManager),
		options:   optionService,
		uploads:   NewUploadService(repo, logger, v, publisher),
		chat:      NewChatService(repo, logger, v, publisher),
		dashboard: NewDashboardService(repo, optionService, logger),
		exports:   NewExportService(repo, logger),
	}
}

// registerStudent creates a student through the auth service and returns it.
func (env *testEnv) registerStudent(t *testing.T, name, email string) *models.User {
	t.Helper()

	user, err := env.auth.Register(context.Background(), &RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "pass1234",
		Role:     models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return user
}

// registerStudents creates n students and returns them in creation order.
func (env *testEnv) registerStudents(t *testing.T, n int) []*models.User {
	t.Helper()

	students := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		students = append(students, env.registerStudent(t,
			fmt.Sprintf("Student %d", i+1),
			fmt.Sprintf("student%d@example.edu", i+1)))
	}
	return students
}

// joinAll allocates every given student to optionID, failing the test on any
// error.
func (env *testEnv) joinAll(t *testing.T, students []*models.User, optionID int) []*models.Group {
	t.Helper()

	groups := make([]*models.Group, 0, len(students))
	for _, student := range students {
		group, err := env.groups.JoinGroup(context.Background(), student.ID, optionID)
		if err != nil {
			t.Fatalf("JoinGroup(%s, %d) failed: %v", student.ID, optionID, err)
		}
		groups = append(groups, group)
	}
	return groups
}

// eventsOfType filters the recorded events by type.
func (env *testEnv) eventsOfType(eventType string) []events.Event {
	var matched []events.Event
	for _, event := range env.publisher.GetPublishedEvents() {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
