package handler

import (
	"time"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"
	"dealership-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GetCustomers lists customers and leads
// GET /api/v1/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	filter := repository.CustomerFilter{
		Status:     c.Query("status"),
		LeadSource: c.Query("leadSource"),
		Search:     c.Query("search"),
	}
	if c.QueryBool("followUpToday") {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		tomorrow := today.AddDate(0, 0, 1)
		filter.FollowUpStart = &today
		filter.FollowUpEnd = &tomorrow
	} else {
		if v := c.Query("followUpStart"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				filter.FollowUpStart = &t
			}
		}
		if v := c.Query("followUpEnd"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				filter.FollowUpEnd = &t
			}
		}
	}

	customers, err := h.customerService.ListCustomers(filter)
	if err != nil {
		return respondError(c, err)
	}

	redact := redactForRole(getUserRole(c))
	responses := make([]model.CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = customers[i].ToResponse(redact)
	}
	return c.JSON(responses)
}

// GetCustomer returns one customer with interests and test drives
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(customer.ToResponse(redactForRole(getUserRole(c))))
}

// CreateCustomer registers a new lead
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(customer.ToResponse(redactForRole(getUserRole(c))))
}

// UpdateCustomer edits a customer record
// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.customerService.UpdateCustomer(id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(customer.ToResponse(redactForRole(getUserRole(c))))
}

// DeleteCustomer removes a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}
