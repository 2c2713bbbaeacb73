package handler

import (
	"dealership-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TestDriveHandler struct {
	testDriveService service.TestDriveService
}

func NewTestDriveHandler(testDriveService service.TestDriveService) *TestDriveHandler {
	return &TestDriveHandler{testDriveService: testDriveService}
}

// GetTestDrives lists test drives, filterable by car or customer
// GET /api/v1/test-drives
func (h *TestDriveHandler) GetTestDrives(c *fiber.Ctx) error {
	var carID, customerID *uuid.UUID
	if v := c.Query("carId"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid car ID"})
		}
		carID = &id
	}
	if v := c.Query("customerId"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		customerID = &id
	}

	drives, err := h.testDriveService.ListTestDrives(carID, customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(drives)
}

// CreateTestDrive schedules a test drive
// POST /api/v1/test-drives
func (h *TestDriveHandler) CreateTestDrive(c *fiber.Ctx) error {
	var req service.TestDriveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	drive, err := h.testDriveService.CreateTestDrive(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(drive)
}
