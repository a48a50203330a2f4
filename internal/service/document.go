package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"docportal/internal/model"
	"docportal/internal/repository"
	"docportal/internal/storage"
)

// ErrStorageUnavailable is returned by Upload when no blob store is configured.
var ErrStorageUnavailable = errors.New("file storage is not configured")

// SubmitInput is the metadata of a new submission. FileLocation is an opaque blob reference.
type SubmitInput struct {
	Title        string             `json:"title" validate:"notblank,max=200"`
	Description  string             `json:"description" validate:"max=2000"`
	Subject      string             `json:"subject" validate:"notblank"`
	DocumentType model.DocumentType `json:"documentType" validate:"required,oneof=assignment notes project thesis other"`
	Year         string             `json:"year" validate:"notblank"`
	Branch       string             `json:"branch" validate:"notblank"`
	FileName     string             `json:"fileName" validate:"notblank"`
	FileType     string             `json:"fileType" validate:"notblank"`
	FileSize     int64              `json:"fileSize" validate:"gte=0"`
	FileLocation string             `json:"fileLocation" validate:"notblank"`
	Uploader     model.Identity     `json:"uploadedBy"`
}

// UploadInput is a submission whose bytes still have to be stored.
type UploadInput struct {
	Title        string
	Description  string
	Subject      string
	DocumentType model.DocumentType
	Year         string
	Branch       string
	FileName     string
	ContentType  string
	Size         int64
	Uploader     model.Identity
}

// UploadRules are the acceptance rules for uploaded files.
type UploadRules struct {
	MaxBytes     int64
	AllowedTypes []string
}

func (r UploadRules) check(contentType string, size int64) error {
	if r.MaxBytes > 0 && size > r.MaxBytes {
		return fieldError("file", fmt.Sprintf("must be at most %d bytes", r.MaxBytes))
	}
	if len(r.AllowedTypes) == 0 {
		return nil
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, allowed := range r.AllowedTypes {
		if ct == strings.ToLower(allowed) {
			return nil
		}
	}
	return fieldError("file", "type "+contentType+" is not allowed")
}

// DocumentQuery filters document listings. Zero fields match everything.
type DocumentQuery struct {
	Subject    string
	Year       string
	UploaderID string
	Status     model.Status
	Search     string
	Since      time.Time
}

// FileLocation points at the stored bytes of a document.
type FileLocation struct {
	DocumentID string     `json:"documentId"`
	Location   string     `json:"location"`
	FileName   string     `json:"fileName"`
	FileType   string     `json:"fileType"`
	URL        string     `json:"url,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// DocumentService defines the record use cases for submissions.
type DocumentService interface {
	// Submit records a new document in the submitted state.
	Submit(ctx context.Context, in SubmitInput) (*model.Document, error)

	// Upload stores the file bytes, then records the document. The stored object is removed if recording fails.
	Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Document, error)

	// List returns documents matching q, newest first.
	List(ctx context.Context, q DocumentQuery) ([]model.Document, error)

	// ListMine returns the documents uploaded by uploaderID, newest first.
	ListMine(ctx context.Context, uploaderID string) ([]model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Location returns the file reference of a document, with a download URL when storage can sign one.
	Location(ctx context.Context, id string) (*FileLocation, error)

	// Delete withdraws a submitted document on behalf of its uploader and removes its bytes.
	Delete(ctx context.Context, id string, requester model.Identity) error
}

type documentService struct {
	repo          repository.DocumentRepository
	store         storage.Storage
	review        ReviewService
	notifier      NotificationService
	rules         UploadRules
	presignExpiry time.Duration
	log           *zap.Logger
	settings
}

// DocumentDeps bundles the collaborators of a DocumentService. Store may be nil.
type DocumentDeps struct {
	Repo          repository.DocumentRepository
	Store         storage.Storage
	Review        ReviewService
	Notifier      NotificationService
	Rules         UploadRules
	PresignExpiry time.Duration
	Log           *zap.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(deps DocumentDeps, opts ...Option) DocumentService {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	expiry := deps.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &documentService{
		repo:          deps.Repo,
		store:         deps.Store,
		review:        deps.Review,
		notifier:      deps.Notifier,
		rules:         deps.Rules,
		presignExpiry: expiry,
		log:           log.Named("documents"),
		settings:      applyOptions(opts),
	}
}

// Submit registers an already stored file. With a blob store configured the file
// must live under the uploader's own key prefix.
func (s *documentService) Submit(ctx context.Context, in SubmitInput) (*model.Document, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if s.store != nil && !storage.OwnedBy(in.FileLocation, in.Uploader.ID) {
		return nil, fieldError("fileLocation", "must be under "+storage.UploaderPrefix(in.Uploader.ID))
	}
	return s.create(ctx, s.newID(), in)
}

func (s *documentService) create(ctx context.Context, id string, in SubmitInput) (*model.Document, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	now := s.now()
	doc := &model.Document{
		ID:           id,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		FileName:     in.FileName,
		FileType:     in.FileType,
		FileSize:     in.FileSize,
		FileLocation: in.FileLocation,
		Subject:      strings.TrimSpace(in.Subject),
		DocumentType: in.DocumentType,
		Year:         strings.TrimSpace(in.Year),
		Branch:       strings.TrimSpace(in.Branch),
		Status:       model.StatusSubmitted,
		UploadedBy:   in.Uploader,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.log.Info("document submitted",
		zap.String("document_id", stored.ID),
		zap.String("uploader_id", stored.UploadedBy.ID),
		zap.String("subject", stored.Subject),
	)

	if s.notifier != nil {
		msg := fmt.Sprintf("%s submitted %q for %s.", stored.UploadedBy.Name, stored.Title, stored.Subject)
		if _, err := s.notifier.Notify(ctx, model.ReviewerAudience, model.NotificationNewDocument, msg,
			&model.DocumentRef{ID: stored.ID, Title: stored.Title}); err != nil {
			s.log.Error("notify reviewers failed", zap.String("document_id", stored.ID), zap.Error(err))
		}
	}
	return stored, nil
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Document, error) {
	if r == nil {
		return nil, fieldError("file", "is required")
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	id := s.newID()
	key := storage.DocumentKey(in.Uploader.ID, id, in.FileName)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	submit := SubmitInput{
		Title:        in.Title,
		Description:  in.Description,
		Subject:      in.Subject,
		DocumentType: in.DocumentType,
		Year:         in.Year,
		Branch:       in.Branch,
		FileName:     in.FileName,
		FileType:     contentType,
		FileSize:     in.Size,
		FileLocation: key,
		Uploader:     in.Uploader,
	}
	if err := validateStruct(submit); err != nil {
		return nil, err
	}
	if err := s.rules.check(contentType, in.Size); err != nil {
		return nil, err
	}

	obj, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.FileName,
			"uploader-id":       in.Uploader.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	if obj.Size > 0 {
		submit.FileSize = obj.Size
	}

	doc, err := s.create(ctx, id, submit)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context, q DocumentQuery) ([]model.Document, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fieldError("status", "must be one of: submitted, approved, rejected")
	}
	return s.repo.List(ctx, repository.DocumentFilter{
		Subject:      q.Subject,
		Year:         q.Year,
		UploaderID:   q.UploaderID,
		Status:       q.Status,
		Search:       q.Search,
		CreatedAfter: q.Since,
	})
}

func (s *documentService) ListMine(ctx context.Context, uploaderID string) ([]model.Document, error) {
	if strings.TrimSpace(uploaderID) == "" {
		return nil, fieldError("uploaderId", "is required")
	}
	return s.repo.List(ctx, repository.DocumentFilter{UploaderID: uploaderID})
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, fieldError("id", "is required")
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "document")
	}
	return doc, nil
}

func (s *documentService) Location(ctx context.Context, id string) (*FileLocation, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	loc := &FileLocation{
		DocumentID: doc.ID,
		Location:   doc.FileLocation,
		FileName:   doc.FileName,
		FileType:   doc.FileType,
	}
	if s.store == nil {
		return loc, nil
	}
	if !storage.OwnedBy(doc.FileLocation, doc.UploadedBy.ID) {
		s.log.Warn("file location outside uploader prefix; not signing",
			zap.String("document_id", doc.ID),
			zap.String("file_location", doc.FileLocation),
		)
		return loc, nil
	}
	u, err := s.store.PresignGet(ctx, doc.FileLocation, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	exp := s.now().Add(s.presignExpiry)
	loc.URL = u
	loc.ExpiresAt = &exp
	return loc, nil
}

func (s *documentService) Delete(ctx context.Context, id string, requester model.Identity) error {
	if id == "" {
		return fieldError("id", "is required")
	}
	removed, err := s.review.Withdraw(ctx, id, requester)
	if err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	if !storage.OwnedBy(removed.FileLocation, removed.UploadedBy.ID) {
		s.log.Warn("file location outside uploader prefix; left in place",
			zap.String("document_id", removed.ID),
			zap.String("file_location", removed.FileLocation),
		)
		return nil
	}
	// The record is already gone; a leftover object is only logged.
	if err := s.store.Delete(ctx, removed.FileLocation); err != nil {
		s.log.Error("delete stored file failed",
			zap.String("document_id", removed.ID),
			zap.String("file_location", removed.FileLocation),
			zap.Error(err),
		)
	}
	return nil
}
