package handler

import (
	"github.com/gofiber/fiber/v2"

	"docportal/internal/service"
)

// GetAnalytics returns upload counts by subject, student and status.
//
// @Summary Upload analytics
// @Tags analytics
// @Produce json
// @Success 200 {object} model.Analytics
// @Router /analytics [get]
func GetAnalytics(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Summarize(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}
