package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ===============================
   Claim extraction from fiber locals

   AuthMiddleware stores user_id / userRole / college_id after the JWT is
   verified; controllers read them through these helpers only.
=================================*/

func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, ErrUnauthorized("Unauthorized - missing user ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrUnauthorized("Unauthorized - invalid user ID")
	}
	return id, nil
}

func GetRoleFromLocals(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", ErrUnauthorized("Unauthorized - missing role information")
	}
	return role, nil
}

func GetCollegeIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("college_id").(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, ErrUnauthorized("Unauthorized - missing college scope")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrUnauthorized("Unauthorized - invalid college scope")
	}
	return id, nil
}

// ParseUUIDParam reads a :param path segment as a UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, ErrInvalidInput(name + " is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidInput(name + " must be a valid UUID")
	}
	return id, nil
}
