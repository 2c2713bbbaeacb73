package repository

import (
	"time"

	"dealership-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseFilter narrows the expense listing.
type ExpenseFilter struct {
	CarID *uuid.UUID
	Type  string
	Start *time.Time
	End   *time.Time
}

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindByID(id uuid.UUID) (*model.Expense, error)
	FindFiltered(f ExpenseFilter) ([]model.Expense, error)
	Update(expense *model.Expense) error
	Delete(id uuid.UUID) error
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.
		Preload("Car").
		Preload("User").
		First(&expense, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepo) FindFiltered(f ExpenseFilter) ([]model.Expense, error) {
	query := r.db.Model(&model.Expense{})

	if f.CarID != nil {
		query = query.Where("car_id = ?", *f.CarID)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Start != nil {
		query = query.Where("date >= ?", *f.Start)
	}
	if f.End != nil {
		query = query.Where("date <= ?", *f.End)
	}

	var expenses []model.Expense
	err := query.
		Preload("Car").
		Preload("User").
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

func (r *expenseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Expense{}, "id = ?", id).Error
}
