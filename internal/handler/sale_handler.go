package handler

import (
	"time"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"
	"dealership-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func saleFilterFromQuery(c *fiber.Ctx) repository.SaleFilter {
	filter := repository.SaleFilter{
		PaymentStatus: c.Query("paymentStatus"),
	}
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.Start = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.End = &t
		}
	}
	return filter
}

// GetSales lists sales, newest first
// GET /api/v1/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.saleService.ListSales(saleFilterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	redact := redactForRole(getUserRole(c))
	responses := make([]model.SaleResponse, len(sales))
	for i := range sales {
		responses[i] = sales[i].ToResponse(redact)
	}
	return c.JSON(responses)
}

// GetSale returns one sale with car, customer and seller
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.saleService.GetSale(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sale.ToResponse(redactForRole(getUserRole(c))))
}

// CreateSale records a sale atomically
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.saleService.RecordSale(&req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(sale.ToResponse(redactForRole(getUserRole(c))))
}

// UpdateSale adjusts payment details on a sale
// PUT /api/v1/sales/:id
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req service.UpdateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.saleService.UpdateSale(id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sale.ToResponse(redactForRole(getUserRole(c))))
}

// DeleteSale reverses a sale and puts the car back on the lot
// DELETE /api/v1/sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.saleService.DeleteSale(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale deleted successfully"})
}

// SalesReport aggregates sales over a date range
// GET /api/v1/reports/sales
func (h *SaleHandler) SalesReport(c *fiber.Ctx) error {
	report, err := h.saleService.SalesReport(saleFilterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
