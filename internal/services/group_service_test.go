package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SEACET-CSE/edugroup-service/internal/events"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

func TestJoinGroup(t *testing.T) {
	t.Run("first join creates batch 1 cell", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		group, err := env.groups.JoinGroup(context.Background(), student.ID, 3)
		if err != nil {
			t.Fatalf("JoinGroup failed: %v", err)
		}

		if group.BatchNumber != 1 {
			t.Errorf("expected batch 1, got %d", group.BatchNumber)
		}
		if group.OptionID != 3 {
			t.Errorf("expected option 3, got %d", group.OptionID)
		}
		if got, want := group.Name, "Group 3-B1"; got != want {
			t.Errorf("expected default name %q, got %q", want, got)
		}
		if len(group.MemberIDs) != 1 || group.MemberIDs[0] != student.ID {
			t.Errorf("expected sole member %s, got %v", student.ID, group.MemberIDs)
		}
		if group.IsLocked {
			t.Error("group with one member must not be locked")
		}
	})

	t.Run("join flips the student lock", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if _, err := env.groups.JoinGroup(context.Background(), student.ID, 1); err != nil {
			t.Fatalf("JoinGroup failed: %v", err)
		}

		refreshed, err := env.auth.GetStudent(context.Background(), student.ID)
		if err != nil {
			t.Fatalf("GetStudent failed: %v", err)
		}
		if !refreshed.PreferencesLocked {
			t.Error("expected PreferencesLocked after join")
		}
	})

	t.Run("second join is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if _, err := env.groups.JoinGroup(context.Background(), student.ID, 1); err != nil {
			t.Fatalf("first JoinGroup failed: %v", err)
		}

		// Neither the same topic nor a different one is allowed.
		for _, optionID := range []int{1, 2} {
			if _, err := env.groups.JoinGroup(context.Background(), student.ID, optionID); !errors.Is(err, ErrAlreadyLocked) {
				t.Errorf("JoinGroup(option %d) after lock: expected ErrAlreadyLocked, got %v", optionID, err)
			}
		}
	})

	t.Run("sixth member locks the group", func(t *testing.T) {
		env := newTestEnv(t)
		students := env.registerStudents(t, models.GroupCapacity)
		groups := env.joinAll(t, students, 2)

		for i, group := range groups[:models.GroupCapacity-1] {
			if group.IsLocked {
				t.Errorf("group locked after %d members", i+1)
			}
		}

		last := groups[models.GroupCapacity-1]
		if !last.IsLocked {
			t.Error("group must lock when the sixth member joins")
		}
		if len(last.MemberIDs) != models.GroupCapacity {
			t.Errorf("expected %d members, got %d", models.GroupCapacity, len(last.MemberIDs))
		}
	})

	t.Run("seventh member spills into batch 2", func(t *testing.T) {
		env := newTestEnv(t)
		students := env.registerStudents(t, models.GroupCapacity+1)
		groups := env.joinAll(t, students, 5)

		spill := groups[models.GroupCapacity]
		if spill.BatchNumber != 2 {
			t.Errorf("expected batch 2 for seventh member, got %d", spill.BatchNumber)
		}
		if got, want := spill.Name, "Group 5-B2"; got != want {
			t.Errorf("expected name %q, got %q", want, got)
		}
		if len(spill.MemberIDs) != 1 {
			t.Errorf("expected fresh cell with 1 member, got %d", len(spill.MemberIDs))
		}
	})

	t.Run("members land in join order", func(t *testing.T) {
		env := newTestEnv(t)
		students := env.registerStudents(t, 4)
		groups := env.joinAll(t, students, 7)

		final := groups[len(groups)-1]
		for i, student := range students {
			if final.MemberIDs[i] != student.ID {
				t.Errorf("member %d: expected %s, got %s", i, student.ID, final.MemberIDs[i])
			}
		}
	})

	t.Run("25th student finds all batches full", func(t *testing.T) {
		env := newTestEnv(t)
		capacity := models.MaxBatches * models.GroupCapacity
		students := env.registerStudents(t, capacity+1)
		env.joinAll(t, students[:capacity], 1)

		_, err := env.groups.JoinGroup(context.Background(), students[capacity].ID, 1)
		if !errors.Is(err, ErrAllBatchesFull) {
			t.Fatalf("expected ErrAllBatchesFull, got %v", err)
		}

		// The rejected student keeps the right to pick another topic.
		refused, err := env.auth.GetStudent(context.Background(), students[capacity].ID)
		if err != nil {
			t.Fatalf("GetStudent failed: %v", err)
		}
		if refused.PreferencesLocked {
			t.Error("refused student must not be locked")
		}

		if group, err := env.groups.JoinGroup(context.Background(), students[capacity].ID, 2); err != nil {
			t.Errorf("join on a different topic failed: %v", err)
		} else if group.OptionID != 2 {
			t.Errorf("expected option 2, got %d", group.OptionID)
		}
	})

	t.Run("full topic spans four batches", func(t *testing.T) {
		env := newTestEnv(t)
		capacity := models.MaxBatches * models.GroupCapacity
		students := env.registerStudents(t, capacity)
		groups := env.joinAll(t, students, 9)

		for i, group := range groups {
			wantBatch := i/models.GroupCapacity + 1
			if group.BatchNumber != wantBatch {
				t.Errorf("join %d: expected batch %d, got %d", i+1, wantBatch, group.BatchNumber)
			}
		}

		all, err := env.groups.GetAllGroups(context.Background())
		if err != nil {
			t.Fatalf("GetAllGroups failed: %v", err)
		}
		if len(all) != models.MaxBatches {
			t.Fatalf("expected %d groups, got %d", models.MaxBatches, len(all))
		}
		for _, group := range all {
			if !group.IsLocked {
				t.Errorf("batch %d must be locked at capacity", group.BatchNumber)
			}
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		for _, optionID := range []int{0, models.OptionCount + 1, -3} {
			if _, err := env.groups.JoinGroup(context.Background(), student.ID, optionID); !errors.Is(err, ErrOptionNotFound) {
				t.Errorf("JoinGroup(option %d): expected ErrOptionNotFound, got %v", optionID, err)
			}
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		env := newTestEnv(t)

		if _, err := env.groups.JoinGroup(context.Background(), "no-such-user", 1); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("admins cannot join", func(t *testing.T) {
		env := newTestEnv(t)
		admin, err := env.auth.Register(context.Background(), &RegisterRequest{
			Name:     "Prof",
			Email:    "prof@seacet.edu",
			Password: "pass1234",
			Role:     models.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("Register admin failed: %v", err)
		}

		_, err = env.groups.JoinGroup(context.Background(), admin.ID, 1)
		if !IsPermissionError(err) {
			t.Errorf("expected PermissionError, got %v", err)
		}
	})

	t.Run("events published on join and lock", func(t *testing.T) {
		env := newTestEnv(t)
		students := env.registerStudents(t, models.GroupCapacity)
		env.joinAll(t, students, 4)

		joined := env.eventsOfType(events.EventGroupMemberJoined)
		if len(joined) != models.GroupCapacity {
			t.Errorf("expected %d member_joined events, got %d", models.GroupCapacity, len(joined))
		}

		locked := env.eventsOfType(events.EventGroupLocked)
		if len(locked) != 1 {
			t.Errorf("expected 1 locked event, got %d", len(locked))
		}
	})
}

func TestJoinGroupConcurrent(t *testing.T) {
	// More contenders than seats on one topic; every seat must be filled
	// exactly once and the losers must all see the full error.
	env := newTestEnv(t)
	capacity := models.MaxBatches * models.GroupCapacity
	students := env.registerStudents(t, capacity+10)

	errs := make(chan error, len(students))
	for _, student := range students {
		go func(id string) {
			_, err := env.groups.JoinGroup(context.Background(), id, 11)
			errs <- err
		}(student.ID)
	}

	var placed, refused int
	for range students {
		err := <-errs
		switch {
		case err == nil:
			placed++
		case errors.Is(err, ErrAllBatchesFull):
			refused++
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}

	if placed != capacity {
		t.Errorf("expected %d placements, got %d", capacity, placed)
	}
	if refused != 10 {
		t.Errorf("expected 10 refusals, got %d", refused)
	}

	groups, err := env.groups.GetAllGroups(context.Background())
	if err != nil {
		t.Fatalf("GetAllGroups failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, group := range groups {
		if len(group.MemberIDs) != models.GroupCapacity {
			t.Errorf("batch %d: expected %d members, got %d", group.BatchNumber, models.GroupCapacity, len(group.MemberIDs))
		}
		for _, id := range group.MemberIDs {
			if seen[id] {
				t.Errorf("student %s placed twice", id)
			}
			seen[id] = true
		}
	}
}

func TestUpdateGroupName(t *testing.T) {
	t.Run("renames an open group", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")
		group, err := env.groups.JoinGroup(context.Background(), student.ID, 1)
		if err != nil {
			t.Fatalf("JoinGroup failed: %v", err)
		}

		if err := env.groups.UpdateGroupName(context.Background(), group.ID, "  Compilers Crew  "); err != nil {
			t.Fatalf("UpdateGroupName failed: %v", err)
		}

		got, err := env.groups.GetByID(context.Background(), group.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Name != "Compilers Crew" {
			t.Errorf("expected trimmed name, got %q", got.Name)
		}
	})

	t.Run("rejects a locked group", func(t *testing.T) {
		env := newTestEnv(t)
		students := env.registerStudents(t, models.GroupCapacity)
		groups := env.joinAll(t, students, 1)

		err := env.groups.UpdateGroupName(context.Background(), groups[0].ID, "Too Late")
		if !errors.Is(err, ErrGroupLocked) {
			t.Errorf("expected ErrGroupLocked, got %v", err)
		}
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.groups.UpdateGroupName(context.Background(), "missing", "Anything")
		if !errors.Is(err, ErrGroupNotFound) {
			t.Errorf("expected ErrGroupNotFound, got %v", err)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")
		group, err := env.groups.JoinGroup(context.Background(), student.ID, 1)
		if err != nil {
			t.Fatalf("JoinGroup failed: %v", err)
		}

		if err := env.groups.UpdateGroupName(context.Background(), group.ID, "   "); err == nil {
			t.Error("expected validation error for blank name")
		}
	})
}

func TestGetGroupForStudent(t *testing.T) {
	env := newTestEnv(t)
	students := env.registerStudents(t, 3)
	env.joinAll(t, students, 6)

	t.Run("resolves members in join order", func(t *testing.T) {
		resp, err := env.groups.GetGroupForStudent(context.Background(), students[1].ID)
		if err != nil {
			t.Fatalf("GetGroupForStudent failed: %v", err)
		}

		if len(resp.Members) != 3 {
			t.Fatalf("expected 3 members, got %d", len(resp.Members))
		}
		for i, student := range students {
			if resp.Members[i].ID != student.ID {
				t.Errorf("member %d: expected %s, got %s", i, student.ID, resp.Members[i].ID)
			}
			if resp.Members[i].Name != fmt.Sprintf("Student %d", i+1) {
				t.Errorf("member %d: unexpected name %q", i, resp.Members[i].Name)
			}
		}
	})

	t.Run("unallocated student has no group", func(t *testing.T) {
		loner := env.registerStudent(t, "Loner", "loner@example.edu")

		_, err := env.groups.GetGroupForStudent(context.Background(), loner.ID)
		if !errors.Is(err, ErrGroupNotFound) {
			t.Errorf("expected ErrGroupNotFound, got %v", err)
		}
	})
}
