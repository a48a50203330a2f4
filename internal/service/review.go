package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docportal/internal/events"
	"docportal/internal/model"
	"docportal/internal/repository"
)

// ReviewService enforces the document status machine:
// submitted -> approved | rejected, with approved and rejected terminal.
// It is the only writer of status, reviewedBy, reviewedAt and professorComment.
type ReviewService interface {
	// Approve moves a submitted document to approved. The comment is optional.
	Approve(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error)

	// Reject moves a submitted document to rejected. The comment is required.
	Reject(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error)

	// Withdraw deletes a still submitted document on behalf of its uploader and returns the removed record.
	Withdraw(ctx context.Context, documentID string, owner model.Identity) (*model.Document, error)
}

type reviewService struct {
	repo      repository.DocumentRepository
	decisions repository.ReviewRepository
	publisher events.Publisher
	log       *zap.Logger
	settings
}

// NewReviewService constructs a ReviewService. Decisions and the uploader notification
// they produce are written together through decisions; publisher announces the
// notification afterwards and may be nil.
func NewReviewService(repo repository.DocumentRepository, decisions repository.ReviewRepository, publisher events.Publisher, log *zap.Logger, opts ...Option) ReviewService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &reviewService{
		repo:      repo,
		decisions: decisions,
		publisher: publisher,
		log:       log.Named("review"),
		settings:  applyOptions(opts),
	}
}

func (s *reviewService) Approve(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error) {
	return s.decide(ctx, documentID, reviewer, model.StatusApproved, comment)
}

func (s *reviewService) Reject(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error) {
	return s.decide(ctx, documentID, reviewer, model.StatusRejected, comment)
}

// decide validates, then applies one compare-and-swap on status together with the
// uploader notification. Either both are stored or neither is.
func (s *reviewService) decide(ctx context.Context, documentID string, reviewer model.Identity, next model.Status, comment string) (*model.Document, error) {
	if !reviewer.IsReviewer() {
		return nil, fmt.Errorf("%w: only professors may review documents", ErrUnauthorized)
	}
	comment = strings.TrimSpace(comment)
	if next == model.StatusRejected && comment == "" {
		return nil, fieldError("comment", "is required to reject a document")
	}

	current, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fromRepository(err, "document")
	}
	if !current.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: document is %s", ErrInvalidTransition, current.Status)
	}

	now := s.now()
	patch := repository.DocumentPatch{
		Status:           &next,
		ProfessorComment: &comment,
		ReviewedBy:       &reviewer,
		ReviewedAt:       &now,
		UpdatedAt:        now,
	}

	decided := *current
	patch.Apply(&decided)
	typ, msg := reviewMessage(&decided, reviewer)
	note, err := newNotification(s.settings, current.UploadedBy.ID, typ, msg, &model.DocumentRef{ID: current.ID, Title: current.Title})
	if err != nil {
		return nil, err
	}

	updated, stored, err := s.decisions.Decide(ctx, documentID, repository.Condition{Status: model.StatusSubmitted}, patch, note)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConditionFailed) {
			return nil, fromRepository(err, "document")
		}
		s.log.Error("record review failed",
			zap.String("document_id", documentID),
			zap.String("reviewer_id", reviewer.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("record review: %w", err)
	}

	s.log.Info("document reviewed",
		zap.String("document_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.String("reviewer_id", reviewer.ID),
		zap.String("notification_id", stored.ID),
	)
	publishNotification(ctx, s.publisher, s.log, *stored)
	return updated, nil
}

func reviewMessage(doc *model.Document, reviewer model.Identity) (model.NotificationType, string) {
	by := reviewer.Name
	if by == "" {
		by = "a reviewer"
	}
	if doc.Status == model.StatusRejected {
		return model.NotificationRejection,
			fmt.Sprintf("Your document %q was rejected by %s. Reason: %s", doc.Title, by, doc.ProfessorComment)
	}
	msg := fmt.Sprintf("Your document %q was approved by %s.", doc.Title, by)
	if doc.ProfessorComment != "" {
		msg += " Comment: " + doc.ProfessorComment
	}
	return model.NotificationApproval, msg
}

func (s *reviewService) Withdraw(ctx context.Context, documentID string, owner model.Identity) (*model.Document, error) {
	if strings.TrimSpace(owner.ID) == "" {
		return nil, fmt.Errorf("%w: requester identity is required", ErrUnauthorized)
	}

	current, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fromRepository(err, "document")
	}
	if current.UploadedBy.ID != owner.ID {
		return nil, fmt.Errorf("%w: only the uploader may delete this document", ErrUnauthorized)
	}
	if current.Status != model.StatusSubmitted {
		return nil, fmt.Errorf("%w: document is %s", ErrInvalidTransition, current.Status)
	}

	if err := s.repo.Delete(ctx, documentID, repository.Condition{Status: model.StatusSubmitted}); err != nil {
		return nil, fromRepository(err, "document")
	}

	s.log.Info("document withdrawn", zap.String("document_id", documentID), zap.String("uploader_id", owner.ID))
	return current, nil
}
