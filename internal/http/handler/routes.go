package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Documents     service.DocumentService
	Review        service.ReviewService
	Notifications service.NotificationService
	Analytics     service.AnalyticsService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when the in-memory store is in use.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(svc.Documents))
	docs.Get("/mine", ListMyDocuments(svc.Documents))
	docs.Post("/", UploadDocument(svc.Documents))
	docs.Get("/:id", GetDocument(svc.Documents))
	docs.Get("/:id/location", GetDocumentLocation(svc.Documents))
	docs.Post("/:id/approve", ApproveDocument(svc.Review))
	docs.Post("/:id/reject", RejectDocument(svc.Review))
	docs.Delete("/:id", DeleteDocument(svc.Documents))

	notes := app.Group("/notifications")
	notes.Get("/", ListNotifications(svc.Notifications))
	notes.Get("/unread-count", UnreadNotificationCount(svc.Notifications))
	notes.Post("/read-all", MarkAllNotificationsRead(svc.Notifications))
	notes.Post("/:id/read", MarkNotificationRead(svc.Notifications))

	app.Get("/analytics", GetAnalytics(svc.Analytics))
}
