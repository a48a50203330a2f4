package model

import "time"

// DocumentType classifies what kind of academic work a document is.
type DocumentType string

const (
	DocumentTypeAssignment DocumentType = "assignment"
	DocumentTypeNotes      DocumentType = "notes"
	DocumentTypeProject    DocumentType = "project"
	DocumentTypeThesis     DocumentType = "thesis"
	DocumentTypeOther      DocumentType = "other"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeAssignment, DocumentTypeNotes, DocumentTypeProject, DocumentTypeThesis, DocumentTypeOther:
		return true
	}
	return false
}

// Document is a submitted academic file's metadata record.
// The file bytes live in external blob storage; FileLocation is the opaque reference to them.
// It carries JSON tags only and has no persistence-specific dependencies.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	FileSize     int64  `json:"fileSize"`
	FileLocation string `json:"fileLocation"`

	Subject      string       `json:"subject"`
	DocumentType DocumentType `json:"documentType"`
	Year         string       `json:"year"`
	Branch       string       `json:"branch"`

	Status           Status     `json:"status"`
	ProfessorComment string     `json:"professorComment,omitempty"`
	ReviewedBy       *Identity  `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`

	UploadedBy Identity  `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Reviewed reports whether the review fields are populated.
func (d *Document) Reviewed() bool {
	return d.ReviewedBy != nil && d.ReviewedAt != nil
}
