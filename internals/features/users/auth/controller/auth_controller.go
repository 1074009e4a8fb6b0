package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "campusevents_backend/internals/features/users/auth/dto"
	authService "campusevents_backend/internals/features/users/auth/service"
	userModel "campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
)

type AuthController struct {
	Service *authService.AuthService
}

func NewAuthController(s *authService.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// 🟢 POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	user, err := ctrl.Service.Register(c.UserContext(), &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Account created", user)
}

// 🟢 POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	resp, err := ctrl.Service.Login(c.UserContext(), &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Login successful", resp)
}

// 🟢 POST /api/auth/login-google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	resp, err := ctrl.Service.LoginGoogle(c.UserContext(), req.IDToken)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Login successful", resp)
}

// 🟢 POST /api/auth/refresh-token
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	resp, err := ctrl.Service.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Token refreshed", resp)
}

// 🟢 POST /api/auth/logout (auth required)
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing bearer token")
	}

	var req authDTO.LogoutRequest
	_ = c.BodyParser(&req) // refresh token is optional

	if err := ctrl.Service.Logout(c.UserContext(), strings.TrimSpace(parts[1]), req.RefreshToken); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// 🟢 GET /api/u/me (auth required)
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.Service.DB.WithContext(c.UserContext()).
		Preload("College").
		Where("user_id = ?", userID).
		Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}
	return helper.JsonOK(c, "", user)
}

// 🟢 POST /api/a/users/admin (admin provisions another admin)
func (ctrl *AuthController) CreateAdmin(c *fiber.Ctx) error {
	var req authDTO.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	user, err := ctrl.Service.CreateAdmin(c.UserContext(), &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Admin created", user)
}
