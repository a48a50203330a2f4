package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/model"
	"docportal/internal/service"
)

type reviewRequest struct {
	Comment string `json:"comment"`
}

type decision func(ctx context.Context, documentID string, reviewer model.Identity, comment string) (*model.Document, error)

func reviewHandler(decide decision) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		me, ok, err := caller(c)
		if !ok {
			return err
		}

		var req reviewRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}

		doc, err := decide(c.UserContext(), id, me, req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ApproveDocument approves a submitted document. The comment is optional.
//
// @Summary Approve a document
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Document id"
// @Param X-User-ID header string true "Reviewer id"
// @Param X-User-Role header string true "Must be professor"
// @Param body body reviewRequest false "Optional comment"
// @Success 200 {object} model.Document
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/{id}/approve [post]
func ApproveDocument(svc service.ReviewService) fiber.Handler {
	return reviewHandler(svc.Approve)
}

// RejectDocument rejects a submitted document. The comment is required.
//
// @Summary Reject a document
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Document id"
// @Param X-User-ID header string true "Reviewer id"
// @Param X-User-Role header string true "Must be professor"
// @Param body body reviewRequest true "Reason for rejection"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/{id}/reject [post]
func RejectDocument(svc service.ReviewService) fiber.Handler {
	return reviewHandler(svc.Reject)
}
