package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusevents_backend/internals/configs"
	collegeRoute "campusevents_backend/internals/features/campus/colleges/route"
	chatbotRoute "campusevents_backend/internals/features/chatbot/route"
	eventRoute "campusevents_backend/internals/features/events/route"
	"campusevents_backend/internals/features/events/store"
	authRoute "campusevents_backend/internals/features/users/auth/route"
	"campusevents_backend/internals/middlewares/auth"
)

// buildEventStore picks the storage adapter from DB_DRIVER. Postgres is the
// server deployment, the embedded driver covers single-binary installs and
// tests.
func buildEventStore(db *gorm.DB) store.EventStore {
	driver := configs.GetEnv("DB_DRIVER", "postgres")
	if driver == "sqlite" {
		log.Println("[INFO] 🗄️ Using embedded event store")
		return store.NewEmbeddedStore(db)
	}
	log.Println("[INFO] 🗄️ Using postgres event store")
	return store.NewPostgresStore(db)
}

// SetupRoutes wires every feature route group onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	eventStore := buildEventStore(db)

	// Authentication endpoints, rate limited per endpoint.
	authRoute.AuthRoutes(app, db)

	// Public catalog, no token required.
	public := app.Group("/api/public")
	eventRoute.EventPublicRoutes(public, eventStore)
	collegeRoute.CollegePublicRoutes(public, db)

	// Public chatbot.
	chatbotRoute.ChatbotRoutes(app.Group("/api"))

	// Student endpoints behind JWT auth.
	user := app.Group("/api/u", auth.AuthMiddleware(db))
	authRoute.MeRoutes(user, db)
	eventRoute.EventUserRoutes(user, eventStore)

	// Admin endpoints behind JWT auth plus role gate inside each route group.
	admin := app.Group("/api/a", auth.AuthMiddleware(db))
	eventRoute.EventAdminRoutes(admin, eventStore)
	collegeRoute.CollegeAdminRoutes(admin, db)
	authRoute.AdminUserRoutes(admin, db)

	log.Println("[INFO] ✅ All routes registered")
}
