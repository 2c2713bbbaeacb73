package handler

import (
	"errors"
	"log"

	"dealership-backend/internal/middleware"
	"dealership-backend/internal/model"
	"dealership-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the caller's identity from the request context
// (set by the RequireAuth middleware).
func getUserID(c *fiber.Ctx) uuid.UUID {
	raw, ok := c.Locals(middleware.CtxUserID).(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func getUserRole(c *fiber.Ctx) string {
	role, ok := c.Locals(middleware.CtxUserRole).(string)
	if !ok {
		return ""
	}
	return role
}

// redactForRole reports whether car purchase prices must be hidden from
// this caller.
func redactForRole(role string) bool {
	return role == model.RoleSalesperson
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps a service error to exactly one HTTP status.
// Unclassified errors become a generic 500; the detail stays in the
// server log.
func respondError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.Status(400).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ve.Fields,
		})
	}

	switch {
	case errors.Is(err, service.ErrCarNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrExpenseNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCarAlreadySold),
		errors.Is(err, service.ErrDuplicateVIN),
		errors.Is(err, service.ErrEmailTaken):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrWrongPassword):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("internal error: %v", err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}
