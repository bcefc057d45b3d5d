package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SEACET-CSE/edugroup-service/internal/events"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/validator"
)

func TestUploadFile(t *testing.T) {
	t.Run("records a submission", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		upload, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
			SectionID: 2,
			FileName:  "design.pdf",
		})
		if err != nil {
			t.Fatalf("UploadFile failed: %v", err)
		}

		if upload.FileName != "design.pdf" {
			t.Errorf("unexpected file name %q", upload.FileName)
		}
		if !strings.HasPrefix(upload.FileURL, "upload://") {
			t.Errorf("expected reference token, got %q", upload.FileURL)
		}
		if upload.UploadedAt == nil {
			t.Error("expected UploadedAt to be set")
		}
		if !upload.HasFile() {
			t.Error("expected HasFile after upload")
		}
	})

	t.Run("re-upload replaces the file and keeps the remark", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if _, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
			SectionID: 1,
			FileName:  "v1.pdf",
		}); err != nil {
			t.Fatalf("first upload failed: %v", err)
		}
		if _, err := env.uploads.AddRemark(context.Background(), student.ID, 1, "needs citations"); err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}

		upload, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
			SectionID: 1,
			FileName:  "v2.pdf",
		})
		if err != nil {
			t.Fatalf("re-upload failed: %v", err)
		}

		if upload.FileName != "v2.pdf" {
			t.Errorf("expected replaced file, got %q", upload.FileName)
		}
		if upload.Remark != "needs citations" {
			t.Errorf("re-upload must keep the remark, got %q", upload.Remark)
		}
	})

	t.Run("rejects bad section id", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		for _, sectionID := range []int{0, len(models.ProjectSections) + 1} {
			_, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
				SectionID: sectionID,
				FileName:  "x.pdf",
			})
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("section %d: expected ValidationErrors, got %v", sectionID, err)
			}
		}
	})

	t.Run("sections stay independent", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		for _, sectionID := range []int{1, 3, 5} {
			if _, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
				SectionID: sectionID,
				FileName:  "report.pdf",
			}); err != nil {
				t.Fatalf("upload to section %d failed: %v", sectionID, err)
			}
		}

		uploads, err := env.uploads.GetUploadsForStudent(context.Background(), student.ID)
		if err != nil {
			t.Fatalf("GetUploadsForStudent failed: %v", err)
		}
		if len(uploads) != 3 {
			t.Errorf("expected 3 records, got %d", len(uploads))
		}
	})
}

func TestDeleteUpload(t *testing.T) {
	t.Run("no record is a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if err := env.uploads.DeleteUpload(context.Background(), student.ID, 1); err != nil {
			t.Errorf("delete of missing record must succeed, got %v", err)
		}
	})

	t.Run("without remark the record is removed", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if _, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
			SectionID: 2,
			FileName:  "draft.pdf",
		}); err != nil {
			t.Fatalf("UploadFile failed: %v", err)
		}

		if err := env.uploads.DeleteUpload(context.Background(), student.ID, 2); err != nil {
			t.Fatalf("DeleteUpload failed: %v", err)
		}

		uploads, err := env.uploads.GetUploadsForStudent(context.Background(), student.ID)
		if err != nil {
			t.Fatalf("GetUploadsForStudent failed: %v", err)
		}
		if len(uploads) != 0 {
			t.Errorf("expected no records after hard delete, got %d", len(uploads))
		}
	})

	t.Run("with remark only the file fields clear", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if _, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
			SectionID: 2,
			FileName:  "draft.pdf",
		}); err != nil {
			t.Fatalf("UploadFile failed: %v", err)
		}
		if _, err := env.uploads.AddRemark(context.Background(), student.ID, 2, "see rubric"); err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}

		if err := env.uploads.DeleteUpload(context.Background(), student.ID, 2); err != nil {
			t.Fatalf("DeleteUpload failed: %v", err)
		}

		uploads, err := env.uploads.GetUploadsForStudent(context.Background(), student.ID)
		if err != nil {
			t.Fatalf("GetUploadsForStudent failed: %v", err)
		}
		if len(uploads) != 1 {
			t.Fatalf("expected the record to survive a soft delete, got %d records", len(uploads))
		}

		survivor := uploads[0]
		if survivor.HasFile() {
			t.Error("file fields must clear on soft delete")
		}
		if survivor.FileName != "" || survivor.FileURL != "" {
			t.Errorf("expected empty file fields, got %q %q", survivor.FileName, survivor.FileURL)
		}
		if survivor.UploadedAt != nil {
			t.Error("UploadedAt must clear on soft delete")
		}
		if survivor.Remark != "see rubric" {
			t.Errorf("remark must survive, got %q", survivor.Remark)
		}
	})
}

func TestAddRemark(t *testing.T) {
	t.Run("creates a file-less record", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		upload, err := env.uploads.AddRemark(context.Background(), student.ID, 4, "start early")
		if err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}

		if upload.HasFile() {
			t.Error("remark-before-upload record must not report a file")
		}
		if upload.Remark != "start early" {
			t.Errorf("unexpected remark %q", upload.Remark)
		}

		// A later upload fills in the file without losing the remark.
		filled, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
			SectionID: 4,
			FileName:  "plan.pdf",
		})
		if err != nil {
			t.Fatalf("UploadFile failed: %v", err)
		}
		if filled.Remark != "start early" {
			t.Errorf("remark lost on upload, got %q", filled.Remark)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		upload, err := env.uploads.AddRemark(context.Background(), student.ID, 1, "  good work  ")
		if err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}
		if upload.Remark != "good work" {
			t.Errorf("expected trimmed remark, got %q", upload.Remark)
		}
	})

	t.Run("rejects blank remark", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		for _, remark := range []string{"", "   ", "\t\n"} {
			if _, err := env.uploads.AddRemark(context.Background(), student.ID, 1, remark); err == nil {
				t.Errorf("expected error for blank remark %q", remark)
			}
		}
	})

	t.Run("rejects bad section id", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		_, err := env.uploads.AddRemark(context.Background(), student.ID, 99, "anything")
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("expected ValidationErrors, got %v", err)
		}
	})

	t.Run("publishes an event", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.registerStudent(t, "Asha", "asha@example.edu")

		if _, err := env.uploads.AddRemark(context.Background(), student.ID, 3, "checked"); err != nil {
			t.Fatalf("AddRemark failed: %v", err)
		}

		if got := env.eventsOfType(events.EventRemarkAdded); len(got) != 1 {
			t.Errorf("expected 1 remark event, got %d", len(got))
		}
	})
}

func TestGetSections(t *testing.T) {
	env := newTestEnv(t)

	sections := env.uploads.GetSections()
	if len(sections) != len(models.ProjectSections) {
		t.Fatalf("expected %d sections, got %d", len(models.ProjectSections), len(sections))
	}
	if sections[0].Label != "Week 1–3" {
		t.Errorf("unexpected first label %q", sections[0].Label)
	}

	// Mutating the returned slice must not touch the catalog.
	sections[0].Label = "tampered"
	if models.ProjectSections[0].Label == "tampered" {
		t.Error("GetSections must return a copy")
	}
}
