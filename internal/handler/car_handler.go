package handler

import (
	"math"
	"strconv"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"
	"dealership-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CarHandler struct {
	carService service.CarService
}

func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// GetCars returns the filtered, paged car listing
// GET /api/v1/cars
func (h *CarHandler) GetCars(c *fiber.Ctx) error {
	filter := repository.CarFilter{
		Status:    c.Query("status"),
		Make:      c.Query("make"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 50),
	}
	if v := c.Query("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}

	cars, total, err := h.carService.ListCars(filter)
	if err != nil {
		return respondError(c, err)
	}

	redact := redactForRole(getUserRole(c))
	responses := make([]model.CarResponse, len(cars))
	for i := range cars {
		responses[i] = cars[i].ToResponse(redact)
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}

	return c.JSON(fiber.Map{
		"cars":       responses,
		"total":      total,
		"page":       filter.Page,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

// GetCar returns one car with its full detail
// GET /api/v1/cars/:id
func (h *CarHandler) GetCar(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid car ID"})
	}

	car, err := h.carService.GetCar(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(car.ToResponse(redactForRole(getUserRole(c))))
}

// CreateCar adds a car to the lot
// POST /api/v1/cars
func (h *CarHandler) CreateCar(c *fiber.Ctx) error {
	var req service.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	car, err := h.carService.CreateCar(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(car.ToResponse(redactForRole(getUserRole(c))))
}

// UpdateCar replaces a car's editable fields
// PUT /api/v1/cars/:id
func (h *CarHandler) UpdateCar(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid car ID"})
	}

	var req service.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	car, err := h.carService.UpdateCar(id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(car.ToResponse(redactForRole(getUserRole(c))))
}

// DeleteCar removes a car
// DELETE /api/v1/cars/:id
func (h *CarHandler) DeleteCar(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid car ID"})
	}

	if err := h.carService.DeleteCar(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Car deleted successfully"})
}
