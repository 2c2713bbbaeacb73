package repository

import (
	"time"

	"dealership-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerFilter narrows the customer listing.
type CustomerFilter struct {
	Status        string
	LeadSource    string
	Search        string
	FollowUpStart *time.Time
	FollowUpEnd   *time.Time
}

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(f CustomerFilter) ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	Update(customer *model.Customer) error
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.CustomerStatus) error
	Delete(id uuid.UUID) error
	// CountFollowUpsBetween counts open leads whose follow-up date falls
	// in [start, end). SOLD and LOST customers are excluded.
	CountFollowUpsBetween(start, end time.Time) (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll(f CustomerFilter) ([]model.Customer, error) {
	query := r.db.Model(&model.Customer{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.LeadSource != "" {
		query = query.Where("lead_source = ?", f.LeadSource)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if f.FollowUpStart != nil && f.FollowUpEnd != nil {
		query = query.Where("follow_up_date >= ? AND follow_up_date < ?", *f.FollowUpStart, *f.FollowUpEnd)
	}

	var customers []model.Customer
	err := query.
		Preload("Interests").
		Preload("Interests.Car").
		Preload("Sales").
		Preload("Sales.Car").
		Order("updated_at DESC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.
		Preload("Interests").
		Preload("Interests.Car").
		Preload("Interests.Car.Photos").
		Preload("TestDrives", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("TestDrives.Car").
		Preload("Sales").
		Preload("Sales.Car").
		Preload("Sales.Car.Expenses").
		Preload("Sales.Seller").
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.CustomerStatus) error {
	return tx.Model(&model.Customer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *customerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}

func (r *customerRepo) CountFollowUpsBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Customer{}).
		Where("follow_up_date >= ? AND follow_up_date < ?", start, end).
		Where("status NOT IN ?", []model.CustomerStatus{model.LeadSold, model.LeadLost}).
		Count(&count).Error
	return count, err
}
