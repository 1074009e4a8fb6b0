package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/events/service"
	helper "campusevents_backend/internals/helpers"
)

type AnalyticsController struct {
	Analytics *service.AnalyticsService
}

func NewAnalyticsController(analytics *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

func reportLimit(c *fiber.Ctx) int {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return limit
}

// 🟢 GET /api/a/reports/popularity?limit=
func (ctrl *AnalyticsController) Popularity(c *fiber.Ctx) error {
	rows, err := ctrl.Analytics.PopularityReport(c.UserContext(), reportLimit(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// 🟢 GET /api/a/reports/top-participants?limit=
func (ctrl *AnalyticsController) TopParticipants(c *fiber.Ctx) error {
	rows, err := ctrl.Analytics.TopParticipants(c.UserContext(), reportLimit(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// 🟢 GET /api/a/reports/feedback?limit=
func (ctrl *AnalyticsController) FeedbackReport(c *fiber.Ctx) error {
	rows, err := ctrl.Analytics.FeedbackReport(c.UserContext(), reportLimit(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}
