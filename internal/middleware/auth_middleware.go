package middleware

import (
	"strings"

	"dealership-backend/internal/repository"
	"dealership-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUserName = "user_name"
	CtxUserRole = "user_role"
)

// RequireAuth validates the bearer token and puts the caller's identity
// in the request context. The user is re-read from the database so a
// deleted account is locked out immediately.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals(CtxUserID, user.ID.String())
		c.Locals(CtxUserName, user.Name)
		c.Locals(CtxUserRole, user.Role)

		return c.Next()
	}
}

// RequireRoles allows only callers whose role is in the list.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRole).(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(roles, ", "),
		})
	}
}

// RequireNotRoles blocks the listed roles and lets everyone else pass.
func RequireNotRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRole).(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, blocked := range roles {
			if role == blocked {
				return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
			}
		}

		return c.Next()
	}
}
