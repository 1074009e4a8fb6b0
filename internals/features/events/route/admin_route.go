package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/events/controller"
	"campusevents_backend/internals/features/events/service"
	"campusevents_backend/internals/features/events/store"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// Login required + admin role
func EventAdminRoutes(api fiber.Router, st store.EventStore) {
	admin := api.Group("/",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("event management"),
			constants.AdminOnly,
		),
	)

	events := service.NewEventService(st)
	analytics := service.NewAnalyticsService(st)

	// ---------- Events (CUD + per-event views) ----------
	eventCtrl := controller.NewEventAdminController(events)
	ev := admin.Group("/events")
	ev.Post("/", eventCtrl.CreateEvent)
	ev.Patch("/:id", eventCtrl.UpdateEvent)
	ev.Delete("/:id", eventCtrl.DeleteEvent)
	ev.Get("/:id/registrations", eventCtrl.GetRegistrantsByEvent)
	ev.Get("/:id/attendance", eventCtrl.GetAttendanceByEvent)

	// ---------- Reports ----------
	analyticsCtrl := controller.NewAnalyticsController(analytics)
	reports := admin.Group("/reports")
	reports.Get("/popularity", analyticsCtrl.Popularity)
	reports.Get("/top-participants", analyticsCtrl.TopParticipants)
	reports.Get("/feedback", analyticsCtrl.FeedbackReport)
}
