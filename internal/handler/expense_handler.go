package handler

import (
	"time"

	"dealership-backend/internal/repository"
	"dealership-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// GetExpenses lists expenses, optionally scoped to one car
// GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	filter := repository.ExpenseFilter{
		Type: c.Query("type"),
	}
	if v := c.Query("carId"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid car ID"})
		}
		filter.CarID = &id
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

	expenses, err := h.expenseService.ListExpenses(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expenses)
}

// CreateExpense books an expense against a car
// POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req service.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	expense, err := h.expenseService.CreateExpense(&req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(expense)
}

// UpdateExpense edits an expense
// PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	var req service.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	expense, err := h.expenseService.UpdateExpense(id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(expense)
}

// DeleteExpense removes an expense
// DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}
