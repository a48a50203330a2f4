package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"docportal/internal/model"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConditionFailed is returned when a conditional write found the row in an unexpected state.
	ErrConditionFailed = errors.New("record condition failed")
)

// DocumentRepository stores document metadata. It holds no business rules:
// preconditions such as "submitted only" or "owner only" belong to the service layer,
// which expresses them to the store through a Condition.
type DocumentRepository interface {
	// Create inserts a new document. The caller supplies ID, Status and timestamps.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns every document matching all set fields of the filter, newest first.
	// The result is one consistent snapshot of the store.
	List(ctx context.Context, f DocumentFilter) ([]model.Document, error)

	// Update applies patch atomically if cond holds and bumps UpdatedAt.
	// It returns ErrNotFound if the row is absent and ErrConditionFailed if cond does not hold.
	Update(ctx context.Context, id string, cond Condition, patch DocumentPatch) (*model.Document, error)

	// Delete removes a document atomically if cond holds.
	// It returns ErrNotFound if the row is absent and ErrConditionFailed if cond does not hold.
	Delete(ctx context.Context, id string, cond Condition) error
}

// DocumentFilter narrows List. Zero-valued fields match any document.
type DocumentFilter struct {
	Subject    string
	Year       string
	UploaderID string
	Status     model.Status
	// Search matches title, description or uploader name, case-insensitively.
	Search string
	// CreatedAfter keeps documents created at or after this instant.
	CreatedAfter time.Time
}

// Condition is a precondition evaluated in the same atomic step as a write.
type Condition struct {
	// Status, when set, must equal the stored status.
	Status model.Status
}

// Holds reports whether doc satisfies the condition.
func (c Condition) Holds(doc *model.Document) bool {
	return c.Status == "" || doc.Status == c.Status
}

// DocumentPatch is a partial mutation. Nil fields are left unchanged.
type DocumentPatch struct {
	Status           *model.Status
	ProfessorComment *string
	ReviewedBy       *model.Identity
	ReviewedAt       *time.Time
	UpdatedAt        time.Time
}

// Apply copies the set fields of p onto doc.
func (p DocumentPatch) Apply(doc *model.Document) {
	if p.Status != nil {
		doc.Status = *p.Status
	}
	if p.ProfessorComment != nil {
		doc.ProfessorComment = *p.ProfessorComment
	}
	if p.ReviewedBy != nil {
		rb := *p.ReviewedBy
		doc.ReviewedBy = &rb
	}
	if p.ReviewedAt != nil {
		ra := *p.ReviewedAt
		doc.ReviewedAt = &ra
	}
	if !p.UpdatedAt.IsZero() {
		doc.UpdatedAt = p.UpdatedAt
	} else {
		doc.UpdatedAt = time.Now().UTC()
	}
}

// Matches reports whether doc passes every set field of the filter.
func (f DocumentFilter) Matches(doc *model.Document) bool {
	if f.Subject != "" && doc.Subject != f.Subject {
		return false
	}
	if f.Year != "" && doc.Year != f.Year {
		return false
	}
	if f.UploaderID != "" && doc.UploadedBy.ID != f.UploaderID {
		return false
	}
	if f.Status != "" && doc.Status != f.Status {
		return false
	}
	if !f.CreatedAfter.IsZero() && doc.CreatedAt.Before(f.CreatedAfter) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(doc.Title), q) &&
			!strings.Contains(strings.ToLower(doc.Description), q) &&
			!strings.Contains(strings.ToLower(doc.UploadedBy.Name), q) {
			return false
		}
	}
	return true
}
