package services

import (
	"context"
	"testing"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

func TestGetAdminStats(t *testing.T) {
	t.Run("empty system", func(t *testing.T) {
		env := newTestEnv(t)

		stats, err := env.dashboard.GetAdminStats(context.Background())
		if err != nil {
			t.Fatalf("GetAdminStats failed: %v", err)
		}

		if stats.TotalStudents != 0 || stats.TotalGroups != 0 {
			t.Errorf("expected zero counts, got %+v", stats)
		}
		if len(stats.Options) != models.OptionCount {
			t.Errorf("expected %d option rows, got %d", models.OptionCount, len(stats.Options))
		}
		if len(stats.Sections) != len(models.ProjectSections) {
			t.Errorf("expected %d section rows, got %d", len(models.ProjectSections), len(stats.Sections))
		}
	})

	t.Run("counts allocations and submissions", func(t *testing.T) {
		env := newTestEnv(t)

		// Six students lock topic 1 (one full group), two more sit on topic 2.
		full := env.registerStudents(t, models.GroupCapacity)
		env.joinAll(t, full, 1)

		partial := []*models.User{
			env.registerStudent(t, "P1", "p1@example.edu"),
			env.registerStudent(t, "P2", "p2@example.edu"),
		}
		env.joinAll(t, partial, 2)

		idle := env.registerStudent(t, "Idle", "idle@example.edu")

		// One submission with a remark, one remark-only record.
		if _, err := env.uploads.UploadFile(context.Background(), idle.ID, &UploadFileRequest{
			SectionID: 1,
			FileName:  "intro.pdf",
		}); err != nil {
			t.Fatalf("UploadFile failed: %v", err)
		}
		if _, err := env.uploads.AddRemark(context.Background(), idle.ID, 1, "solid start"); err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}
		if _, err := env.uploads.AddRemark(context.Background(), partial[0].ID, 2, "missing outline"); err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}

		stats, err := env.dashboard.GetAdminStats(context.Background())
		if err != nil {
			t.Fatalf("GetAdminStats failed: %v", err)
		}

		if stats.TotalStudents != 9 {
			t.Errorf("expected 9 students, got %d", stats.TotalStudents)
		}
		if stats.LockedStudents != 8 {
			t.Errorf("expected 8 locked students, got %d", stats.LockedStudents)
		}
		if stats.TotalGroups != 2 {
			t.Errorf("expected 2 groups, got %d", stats.TotalGroups)
		}
		if stats.LockedGroups != 1 {
			t.Errorf("expected 1 locked group, got %d", stats.LockedGroups)
		}

		byOption := make(map[int]OptionFillStats, len(stats.Options))
		for _, row := range stats.Options {
			byOption[row.OptionID] = row
		}
		if row := byOption[1]; row.Members != models.GroupCapacity || row.Groups != 1 || row.Stats.Batch != 2 {
			t.Errorf("option 1 row off: %+v", row)
		}
		if row := byOption[2]; row.Members != 2 || row.Stats.Remaining != models.GroupCapacity-2 {
			t.Errorf("option 2 row off: %+v", row)
		}
		if row := byOption[3]; row.Members != 0 || row.Groups != 0 {
			t.Errorf("option 3 row off: %+v", row)
		}

		bySection := make(map[int]SectionUploadStat, len(stats.Sections))
		for _, row := range stats.Sections {
			bySection[row.SectionID] = row
		}
		if row := bySection[1]; row.Submissions != 1 || row.Remarks != 1 {
			t.Errorf("section 1 row off: %+v", row)
		}
		if row := bySection[2]; row.Submissions != 0 || row.Remarks != 1 {
			t.Errorf("section 2 row off: %+v", row)
		}
	})
}
