package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/events/controller"
	"campusevents_backend/internals/features/events/service"
	"campusevents_backend/internals/features/events/store"
)

// Public, no login: event discovery
func EventPublicRoutes(api fiber.Router, st store.EventStore) {
	events := service.NewEventService(st)
	lifecycle := service.NewLifecycleService(st)
	ctrl := controller.NewEventUserController(events, lifecycle)

	api.Get("/events", ctrl.ListEvents)
	api.Get("/events/:id", ctrl.GetEvent)
}
