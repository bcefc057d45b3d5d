package models

import "time"

// ProjectSection is one of the 6 fixed project milestones. The catalog is
// static configuration, not stored per user.
type ProjectSection struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ProjectSections is the fixed milestone catalog the submission ledger keys
// against.
var ProjectSections = []ProjectSection{
	{ID: 1, Label: "Week 1–3"},
	{ID: 2, Label: "Week 4–5"},
	{ID: 3, Label: "Week 6–8"},
	{ID: 4, Label: "Week 9–11"},
	{ID: 5, Label: "Week 12–14"},
	{ID: 6, Label: "Week 15–16"},
}

// SectionUpload is the per-(student, section) ledger record. A record may
// carry a remark with no file ("comment without submission"); existence of
// a record alone does not imply a submission — HasFile does.
type SectionUpload struct {
	StudentID string `json:"student_id" gorm:"primaryKey;size:255"`
	SectionID int    `json:"section_id" gorm:"primaryKey" validate:"min=1,max=6"`

	FileName string `json:"file_name" gorm:"size:255"`
	// FileURL is an opaque reference token; file bytes are never stored here.
	FileURL    string     `json:"file_url" gorm:"size:500"`
	UploadedAt *time.Time `json:"uploaded_at"`

	// Instructor remark. A remark keeps the record alive across a file
	// retraction (soft delete).
	Remark string `json:"remark" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SectionUpload) TableName() string {
	return "section_uploads"
}

func (u *SectionUpload) HasFile() bool {
	return u.FileName != ""
}

func (u *SectionUpload) HasRemark() bool {
	return u.Remark != ""
}
