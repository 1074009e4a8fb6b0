package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/service"
	helper "campusevents_backend/internals/helpers"
)

type EventAdminController struct {
	Events *service.EventService
}

func NewEventAdminController(events *service.EventService) *EventAdminController {
	return &EventAdminController{Events: events}
}

// 🟢 POST /api/a/events
func (ctrl *EventAdminController) CreateEvent(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	creatorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	collegeID, err := helper.GetCollegeIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	ev, err := ctrl.Events.CreateEvent(c.UserContext(), &req, collegeID, creatorID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	log.Printf("[INFO] event created id=%s by=%s", ev.EventID, creatorID)
	return helper.JsonCreated(c, "Event created", ev)
}

// 🟢 PATCH /api/a/events/:id
func (ctrl *EventAdminController) UpdateEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	ev, err := ctrl.Events.UpdateEvent(c.UserContext(), id, &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Event updated", ev)
}

// 🟢 DELETE /api/a/events/:id (cascades to registrations/attendance/feedback)
func (ctrl *EventAdminController) DeleteEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctrl.Events.DeleteEvent(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": id})
}

// 🟢 GET /api/a/events/:id/registrations
func (ctrl *EventAdminController) GetRegistrantsByEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := ctrl.Events.RegistrationsForEvent(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// 🟢 GET /api/a/events/:id/attendance
func (ctrl *EventAdminController) GetAttendanceByEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := ctrl.Events.AttendanceForEvent(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}
