package repository

import (
	"time"

	"dealership-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFilter narrows the sale listing.
type SaleFilter struct {
	Start         *time.Time
	End           *time.Time
	PaymentStatus string
}

type SaleRepository interface {
	// Create accepts the transaction handle; the sale row must commit
	// together with the car and customer status updates.
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByCarID(carID uuid.UUID) (*model.Sale, error)
	FindFiltered(f SaleFilter) ([]model.Sale, error)
	// FindBetween returns sales in [start, end] with car purchase price
	// and expense amounts loaded, for window aggregation.
	FindBetween(start, end time.Time) ([]model.Sale, error)
	// FindRecent returns the most recent sales by sale date.
	FindRecent(limit int) ([]model.Sale, error)
	FindAllWithCar() ([]model.Sale, error)
	Update(sale *model.Sale) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.
		Preload("Car").
		Preload("Car.Expenses").
		Preload("Car.Photos").
		Preload("Customer").
		Preload("Seller").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByCarID(carID uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.First(&sale, "car_id = ?", carID).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindFiltered(f SaleFilter) ([]model.Sale, error) {
	query := r.db.Model(&model.Sale{})
	if f.Start != nil {
		query = query.Where("sale_date >= ?", *f.Start)
	}
	if f.End != nil {
		query = query.Where("sale_date <= ?", *f.End)
	}
	if f.PaymentStatus != "" {
		query = query.Where("payment_status = ?", f.PaymentStatus)
	}

	var sales []model.Sale
	err := query.
		Preload("Car").
		Preload("Car.Expenses").
		Preload("Customer").
		Preload("Seller").
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindBetween(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("Car").
		Preload("Car.Expenses").
		Where("sale_date BETWEEN ? AND ?", start, end).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("Car").
		Order("sale_date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindAllWithCar() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("Car").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Update(sale *model.Sale) error {
	return r.db.Save(sale).Error
}

func (r *saleRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Sale{}, "id = ?", id).Error
}
