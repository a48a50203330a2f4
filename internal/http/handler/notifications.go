package handler

import (
	"github.com/gofiber/fiber/v2"

	"docportal/internal/model"
	"docportal/internal/service"
)

type notificationList struct {
	Items       []model.Notification `json:"items"`
	UnreadCount int                  `json:"unreadCount"`
}

// recipient resolves whose inbox a request addresses: the caller's own, or the
// shared reviewer inbox with ?audience=reviewers for professors.
func recipient(c *fiber.Ctx) (string, bool, error) {
	me, ok, err := caller(c)
	if !ok {
		return "", false, err
	}
	switch c.Query("audience") {
	case "":
		return me.ID, true, nil
	case model.ReviewerAudience:
		if !me.IsReviewer() {
			return "", false, writeError(c, fiber.StatusForbidden, "UNAUTHORIZED", "only professors may read the reviewer inbox")
		}
		return model.ReviewerAudience, true, nil
	default:
		return "", false, writeErrorFields(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed",
			map[string]string{"audience": "must be empty or " + model.ReviewerAudience})
	}
}

// ListNotifications returns the inbox newest first.
//
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "Caller id"
// @Param audience query string false "reviewers for the shared professor inbox"
// @Success 200 {object} notificationList
// @Failure 401 {object} errorPayload
// @Router /notifications [get]
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		to, ok, err := recipient(c)
		if !ok {
			return err
		}
		items, err := svc.List(c.UserContext(), to)
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.Notification{}
		}
		unread := 0
		for _, n := range items {
			if !n.Read {
				unread++
			}
		}
		return c.JSON(notificationList{Items: items, UnreadCount: unread})
	}
}

// UnreadNotificationCount returns how many notifications are unread.
//
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "Caller id"
// @Param audience query string false "reviewers for the shared professor inbox"
// @Success 200 {object} map[string]int
// @Router /notifications/unread-count [get]
func UnreadNotificationCount(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		to, ok, err := recipient(c)
		if !ok {
			return err
		}
		n, err := svc.UnreadCount(c.UserContext(), to)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"unreadCount": n})
	}
}

// MarkNotificationRead marks one notification read.
//
// @Summary Mark a notification read
// @Tags notifications
// @Param id path string true "Notification id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /notifications/{id}/read [post]
func MarkNotificationRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		if err := svc.MarkRead(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// MarkAllNotificationsRead marks the whole inbox read.
//
// @Summary Mark all notifications read
// @Tags notifications
// @Param X-User-ID header string true "Caller id"
// @Param audience query string false "reviewers for the shared professor inbox"
// @Success 204
// @Router /notifications/read-all [post]
func MarkAllNotificationsRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		to, ok, err := recipient(c)
		if !ok {
			return err
		}
		if err := svc.MarkAllRead(c.UserContext(), to); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
