package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"docportal/internal/model"
	"docportal/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Conditional writes are single statements, so the check and the write cannot be separated.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, description, file_name, file_type, file_size, file_location,
		subject, document_type, year, branch, status, professor_comment,
		reviewer_id, reviewer_name, reviewer_email, reviewer_role, reviewer_roll_number, reviewed_at,
		uploader_id, uploader_name, uploader_email, uploader_roll_number, uploader_role,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d             model.Document
		reviewerID    sql.NullString
		reviewerName  sql.NullString
		reviewerEmail sql.NullString
		reviewerRole  sql.NullString
		reviewerRoll  sql.NullString
		reviewedAt    sql.NullTime
		uploaderRole  string
	)
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.FileName,
		&d.FileType,
		&d.FileSize,
		&d.FileLocation,
		&d.Subject,
		&d.DocumentType,
		&d.Year,
		&d.Branch,
		&d.Status,
		&d.ProfessorComment,
		&reviewerID,
		&reviewerName,
		&reviewerEmail,
		&reviewerRole,
		&reviewerRoll,
		&reviewedAt,
		&d.UploadedBy.ID,
		&d.UploadedBy.Name,
		&d.UploadedBy.Email,
		&d.UploadedBy.RollNumber,
		&uploaderRole,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if reviewerID.Valid {
		d.ReviewedBy = &model.Identity{
			ID:         reviewerID.String,
			Name:       reviewerName.String,
			Email:      reviewerEmail.String,
			Role:       model.Role(reviewerRole.String),
			RollNumber: reviewerRoll.String,
		}
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		d.ReviewedAt = &t
	}
	d.UploadedBy.Role = model.Role(uploaderRole)
	return &d, nil
}

func uploaderRole(id model.Identity) string {
	if id.Role == "" {
		return string(model.RoleStudent)
	}
	return string(id.Role)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, description, file_name, file_type, file_size, file_location,
			subject, document_type, year, branch, status, professor_comment,
			uploader_id, uploader_name, uploader_email, uploader_roll_number, uploader_role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.FileName,
		doc.FileType,
		doc.FileSize,
		doc.FileLocation,
		doc.Subject,
		doc.DocumentType,
		doc.Year,
		doc.Branch,
		doc.Status,
		doc.ProfessorComment,
		doc.UploadedBy.ID,
		doc.UploadedBy.Name,
		doc.UploadedBy.Email,
		doc.UploadedBy.RollNumber,
		uploaderRole(doc.UploadedBy),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns documents matching the filter, most recently updated first.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) ([]model.Document, error) {
	where, args := buildDocumentWhere(f)
	q := `SELECT ` + documentColumns + ` FROM documents` + where +
		` ORDER BY updated_at DESC, created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func buildDocumentWhere(f repository.DocumentFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(expr string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}
	if f.Subject != "" {
		add("subject = $%d", f.Subject)
	}
	if f.Year != "" {
		add("year = $%d", f.Year)
	}
	if f.UploaderID != "" {
		add("uploader_id = $%d", f.UploaderID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if !f.CreatedAfter.IsZero() {
		add("created_at >= $%d", f.CreatedAfter)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR uploader_name ILIKE $%d)", n, n, n))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Update applies the patch in one conditional UPDATE statement.
func (r *DocumentPostgres) Update(ctx context.Context, id string, cond repository.Condition, patch repository.DocumentPatch) (*model.Document, error) {
	return updateDocument(ctx, r.db, id, cond, patch)
}

func updateDocument(ctx context.Context, db querier, id string, cond repository.Condition, patch repository.DocumentPatch) (*model.Document, error) {
	var (
		sets []string
		args = []any{id}
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.ProfessorComment != nil {
		set("professor_comment", *patch.ProfessorComment)
	}
	if patch.ReviewedBy != nil {
		set("reviewer_id", patch.ReviewedBy.ID)
		set("reviewer_name", patch.ReviewedBy.Name)
		set("reviewer_email", patch.ReviewedBy.Email)
		set("reviewer_role", string(patch.ReviewedBy.Role))
		set("reviewer_roll_number", patch.ReviewedBy.RollNumber)
	}
	if patch.ReviewedAt != nil {
		set("reviewed_at", *patch.ReviewedAt)
	}
	if patch.UpdatedAt.IsZero() {
		sets = append(sets, "updated_at = now()")
	} else {
		set("updated_at", patch.UpdatedAt)
	}

	q := `UPDATE documents SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	if cond.Status != "" {
		args = append(args, cond.Status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += ` RETURNING ` + documentColumns

	d, err := scanDocument(db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, missOrConflict(ctx, db, id)
		}
		return nil, err
	}
	return d, nil
}

// Delete removes a document in one conditional DELETE statement.
func (r *DocumentPostgres) Delete(ctx context.Context, id string, cond repository.Condition) error {
	q := `DELETE FROM documents WHERE id = $1`
	args := []any{id}
	if cond.Status != "" {
		q += ` AND status = $2`
		args = append(args, cond.Status)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missOrConflict(ctx, r.db, id)
	}
	return nil
}

// missOrConflict tells a missing row apart from one whose condition did not hold.
func missOrConflict(ctx context.Context, db querier, id string) error {
	const q = `SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`
	var exists bool
	if err := db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConditionFailed
}
