package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/events/controller"
	"campusevents_backend/internals/features/events/service"
	"campusevents_backend/internals/features/events/store"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// Login required + student role. All lifecycle actions run on the caller's
// own identity from the token, never a client-supplied student id.
func EventUserRoutes(api fiber.Router, st store.EventStore) {
	events := service.NewEventService(st)
	lifecycle := service.NewLifecycleService(st)
	ctrl := controller.NewEventUserController(events, lifecycle)

	student := api.Group("/events",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStudent("event registration"),
			constants.StudentOnly,
		),
	)

	student.Get("/mine", ctrl.MyRegistrations)
	student.Post("/:id/register", ctrl.Register)
	student.Delete("/:id/register", ctrl.Unregister)
	student.Post("/:id/checkin", ctrl.CheckIn)
	student.Post("/:id/feedback", ctrl.SubmitFeedback)
}
