package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/users/auth/controller"
	authService "campusevents_backend/internals/features/users/auth/service"
	"campusevents_backend/internals/middlewares"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// AuthRoutes: public auth endpoints + authenticated session endpoints.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	svc := authService.NewAuthService(db)
	ctrl := controller.NewAuthController(svc)

	api := app.Group("/api/auth")
	api.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	api.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	api.Post("/refresh-token", ctrl.Refresh)
	api.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
}

// MeRoutes lives under the authenticated /api/u group.
func MeRoutes(api fiber.Router, db *gorm.DB) {
	svc := authService.NewAuthService(db)
	ctrl := controller.NewAuthController(svc)
	api.Get("/me", ctrl.Me)
}

// AdminUserRoutes: admin-only account provisioning under /api/a.
func AdminUserRoutes(api fiber.Router, db *gorm.DB) {
	svc := authService.NewAuthService(db)
	ctrl := controller.NewAuthController(svc)
	admin := api.Group("/users",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("user management"),
			constants.AdminOnly,
		),
	)
	admin.Post("/admin", ctrl.CreateAdmin)
}
