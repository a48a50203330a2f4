package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"docportal/internal/model"
	"docportal/internal/service"
)

type documentList struct {
	Items []model.Document `json:"items"`
	Total int              `json:"total"`
}

func newDocumentList(docs []model.Document) documentList {
	if docs == nil {
		docs = []model.Document{}
	}
	return documentList{Items: docs, Total: len(docs)}
}

// ListDocuments lists documents newest first.
//
// @Summary List documents
// @Tags documents
// @Produce json
// @Param subject query string false "Exact subject"
// @Param year query string false "Exact year"
// @Param uploaderId query string false "Uploader id"
// @Param status query string false "submitted, approved or rejected"
// @Param q query string false "Search title, description and uploader name"
// @Param since query string false "RFC3339 lower bound on createdAt"
// @Success 200 {object} documentList
// @Failure 400 {object} errorPayload
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.DocumentQuery{
			Subject:    c.Query("subject"),
			Year:       c.Query("year"),
			UploaderID: c.Query("uploaderId"),
			Status:     model.Status(c.Query("status")),
			Search:     c.Query("q"),
		}
		if raw := c.Query("since"); raw != "" {
			since, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return writeErrorFields(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed",
					map[string]string{"since": "must be an RFC3339 timestamp"})
			}
			q.Since = since
		}

		docs, err := svc.List(c.UserContext(), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(newDocumentList(docs))
	}
}

// ListMyDocuments lists the caller's own documents.
//
// @Summary List my documents
// @Tags documents
// @Produce json
// @Param X-User-ID header string true "Caller id"
// @Success 200 {object} documentList
// @Failure 401 {object} errorPayload
// @Router /documents/mine [get]
func ListMyDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me, ok, err := caller(c)
		if !ok {
			return err
		}
		docs, err := svc.ListMine(c.UserContext(), me.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(newDocumentList(docs))
	}
}

// UploadDocument stores the file and records a submitted document (multipart/form-data, field name: file).
// A JSON body instead registers metadata for a file that is already stored, see service.SubmitInput.
//
// @Summary Upload a document
// @Tags documents
// @Accept mpfd
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller id"
// @Param X-User-Name header string true "Caller display name"
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param subject formData string true "Subject"
// @Param documentType formData string true "assignment, notes, project, thesis or other"
// @Param year formData string true "Year"
// @Param branch formData string true "Branch"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me, ok, err := caller(c)
		if !ok {
			return err
		}
		if c.Is("json") {
			return submitMetadata(c, svc, me)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), f, service.UploadInput{
			Title:        formValue(c, "title"),
			Description:  formValue(c, "description"),
			Subject:      formValue(c, "subject"),
			DocumentType: model.DocumentType(formValue(c, "documentType")),
			Year:         formValue(c, "year"),
			Branch:       formValue(c, "branch"),
			FileName:     utils.CopyString(fh.Filename),
			ContentType:  utils.CopyString(ct),
			Size:         fh.Size,
			Uploader:     me,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// formValue copies a form field out of the request buffer so the stored document owns it.
func formValue(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.FormValue(key))
}

func submitMetadata(c *fiber.Ctx, svc service.DocumentService, me model.Identity) error {
	var in service.SubmitInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	// The uploader is always the caller, whatever the body claims.
	in.Uploader = me

	doc, err := svc.Submit(c.UserContext(), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetDocument returns one document.
//
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// GetDocumentLocation returns where the document bytes live, with a presigned URL when available.
//
// @Summary Get a document's file location
// @Tags documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} service.FileLocation
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/location [get]
func GetDocumentLocation(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		loc, err := svc.Location(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(loc)
	}
}

// DeleteDocument withdraws a still submitted document on behalf of its uploader.
//
// @Summary Withdraw a document
// @Tags documents
// @Param id path string true "Document id"
// @Param X-User-ID header string true "Caller id"
// @Success 204
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		me, ok, err := caller(c)
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id, me); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
