package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/campus/colleges/controller"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// Public read: the registration form needs the college list pre-login.
func CollegePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCollegeController(db)
	api.Get("/colleges", ctrl.GetColleges)
	api.Get("/colleges/:id", ctrl.GetCollegeByID)
}

// Admin-only create
func CollegeAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCollegeController(db)
	admin := api.Group("/colleges",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("college management"),
			constants.AdminOnly,
		),
	)
	admin.Post("/", ctrl.CreateCollege)
}
