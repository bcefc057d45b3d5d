package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

func TestExportGroups(t *testing.T) {
	env := newTestEnv(t)
	students := env.registerStudents(t, 3)
	env.joinAll(t, students, 2)

	data, err := env.exports.ExportGroups(context.Background())
	if err != nil {
		t.Fatalf("ExportGroups failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Groups")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}

	// Header plus one row per member.
	if len(rows) != 1+len(students) {
		t.Fatalf("expected %d rows, got %d", 1+len(students), len(rows))
	}
	if rows[0][0] != "Group" || rows[0][5] != "Member" {
		t.Errorf("unexpected header %v", rows[0])
	}
	for i, student := range students {
		row := rows[i+1]
		if row[0] != "Group 2-B1" {
			t.Errorf("row %d: unexpected group name %q", i+1, row[0])
		}
		if row[3] != "3/6" {
			t.Errorf("row %d: unexpected seats %q", i+1, row[3])
		}
		if row[6] != student.Email {
			t.Errorf("row %d: expected email %q, got %q", i+1, student.Email, row[6])
		}
	}
}

func TestExportUploads(t *testing.T) {
	env := newTestEnv(t)
	student := env.registerStudent(t, "Asha", "asha@example.edu")

	if _, err := env.uploads.UploadFile(context.Background(), student.ID, &UploadFileRequest{
		SectionID: 1,
		FileName:  "intro.pdf",
	}); err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if _, err := env.uploads.AddRemark(context.Background(), student.ID, 2, "expand scope"); err != nil {
		t.Fatalf("AddRemark failed: %v", err)
	}

	data, err := env.exports.ExportUploads(context.Background())
	if err != nil {
		t.Fatalf("ExportUploads failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Submissions")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one student row, got %d rows", len(rows))
	}

	header := rows[0]
	if want := 2 + 2*len(models.ProjectSections); len(header) != want {
		t.Errorf("expected %d header cells, got %d", want, len(header))
	}

	row := rows[1]
	if row[0] != "Asha" || row[1] != "asha@example.edu" {
		t.Errorf("unexpected identity cells %v", row[:2])
	}
	// Section 1 file in column 3, section 2 remark in column 6.
	if row[2] != "intro.pdf" {
		t.Errorf("expected section 1 file, got %q", row[2])
	}
	if len(row) > 5 && row[5] != "expand scope" {
		t.Errorf("expected section 2 remark, got %q", row[5])
	}
}
