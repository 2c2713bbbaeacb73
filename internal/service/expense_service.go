package service

import (
	"errors"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseService interface {
	ListExpenses(f repository.ExpenseFilter) ([]model.Expense, error)
	CreateExpense(req *ExpenseRequest, callerID uuid.UUID) (*model.Expense, error)
	UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*model.Expense, error)
	DeleteExpense(id uuid.UUID) error
}

// ExpenseRequest is the POST/PUT /expenses body.
type ExpenseRequest struct {
	CarID       uuid.UUID         `json:"carId" validate:"uuid_required"`
	Type        model.ExpenseType `json:"type" validate:"required,oneof=REPAIR DETAILING REGISTRATION INSPECTION TRANSPORT OTHER"`
	Amount      float64           `json:"amount" validate:"min=0"`
	Date        string            `json:"date" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Vendor      string            `json:"vendor"`
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	carRepo     repository.CarRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, carRepo repository.CarRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, carRepo: carRepo}
}

func (s *expenseService) ListExpenses(f repository.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.FindFiltered(f)
}

func (s *expenseService) CreateExpense(req *ExpenseRequest, callerID uuid.UUID) (*model.Expense, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.carRepo.FindByID(req.CarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	expense := &model.Expense{
		CarID:       req.CarID,
		UserID:      callerID,
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		Vendor:      req.Vendor,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*model.Expense, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	expense.Type = req.Type
	expense.Amount = req.Amount
	expense.Date = date
	expense.Description = req.Description
	expense.Vendor = req.Vendor

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	return s.expenseRepo.Delete(id)
}
