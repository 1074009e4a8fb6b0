package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/service"
	helper "campusevents_backend/internals/helpers"
)

type EventUserController struct {
	Events    *service.EventService
	Lifecycle *service.LifecycleService
}

func NewEventUserController(events *service.EventService, lifecycle *service.LifecycleService) *EventUserController {
	return &EventUserController{Events: events, Lifecycle: lifecycle}
}

// 🟢 GET /api/public/events?search=&date=&college_id=&status=
func (ctrl *EventUserController) ListEvents(c *fiber.Ctx) error {
	var f dto.EventFilter
	f.Search = strings.TrimSpace(c.Query("search"))
	f.Status = strings.TrimSpace(c.Query("status"))

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		}
		f.Date = &date
	}
	if raw := strings.TrimSpace(c.Query("college_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "college_id must be a valid UUID")
		}
		f.CollegeID = &id
	}

	rows, err := ctrl.Events.ListEvents(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToEventResponseList(rows))
}

// 🟢 GET /api/public/events/:id
func (ctrl *EventUserController) GetEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := ctrl.Events.GetEvent(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToEventResponse(*row))
}

// 🟢 POST /api/u/events/:id/register (always on the caller's own identity)
func (ctrl *EventUserController) Register(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	reg, err := ctrl.Lifecycle.Register(c.UserContext(), eventID, studentID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Registered", reg)
}

// 🟢 DELETE /api/u/events/:id/register
func (ctrl *EventUserController) Unregister(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	if err := ctrl.Lifecycle.Unregister(c.UserContext(), eventID, studentID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Registration cancelled", fiber.Map{"event_id": eventID})
}

// 🟢 POST /api/u/events/:id/checkin
func (ctrl *EventUserController) CheckIn(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	att, err := ctrl.Lifecycle.CheckIn(c.UserContext(), eventID, studentID, req.CheckinMethod)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Checked in", att)
}

// 🟢 POST /api/u/events/:id/feedback
func (ctrl *EventUserController) SubmitFeedback(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	fb, err := ctrl.Lifecycle.SubmitFeedback(c.UserContext(), eventID, studentID, req.FeedbackRating, req.FeedbackComment)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Feedback submitted", fb)
}

// 🟢 GET /api/u/events/mine
func (ctrl *EventUserController) MyRegistrations(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	regs, err := ctrl.Lifecycle.MyRegistrations(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", regs)
}
