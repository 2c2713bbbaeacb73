package repository

import (
	"dealership-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusCount is one row of the cars-by-status breakdown.
type StatusCount struct {
	Status model.CarStatus `json:"status"`
	Count  int64           `json:"count"`
}

// CarFilter narrows and pages the car listing.
type CarFilter struct {
	Status    string
	Make      string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type CarRepository interface {
	Create(car *model.Car) error
	Search(f CarFilter) ([]model.Car, int64, error)
	FindByID(id uuid.UUID) (*model.Car, error)
	FindByVIN(vin string) (*model.Car, error)
	// FindForSale loads the car with its expenses and current sale while
	// holding a row lock, so two concurrent sale attempts serialize.
	FindForSale(tx *gorm.DB, id uuid.UUID) (*model.Car, error)
	FindInStock() ([]model.Car, error)
	CountInStockByStatus() ([]StatusCount, error)
	Update(car *model.Car) error
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.CarStatus) error
	Delete(id uuid.UUID) error
}

type carRepo struct {
	db *gorm.DB
}

func NewCarRepo(db *gorm.DB) CarRepository {
	return &carRepo{db}
}

func (r *carRepo) Create(car *model.Car) error {
	return r.db.Create(car).Error
}

// Columns the listing may sort on. Anything else falls back to created_at.
var carSortColumns = map[string]string{
	"createdAt":    "created_at",
	"purchaseDate": "purchase_date",
	"targetPrice":  "target_price",
	"year":         "year",
	"make":         "make",
	"mileage":      "mileage",
}

func (r *carRepo) Search(f CarFilter) ([]model.Car, int64, error) {
	query := r.db.Model(&model.Car{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Make != "" {
		query = query.Where("make ILIKE ?", "%"+f.Make+"%")
	}
	if f.MinPrice != nil {
		query = query.Where("target_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("target_price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("make ILIKE ? OR model ILIKE ? OR vin ILIKE ? OR license_plate ILIKE ?", like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := carSortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var cars []model.Car
	err := query.
		Preload("Photos").
		Preload("Expenses").
		Preload("Sale").
		Preload("Sale.Customer").
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&cars).Error
	return cars, total, err
}

func (r *carRepo) FindByID(id uuid.UUID) (*model.Car, error) {
	var car model.Car
	err := r.db.
		Preload("Photos").
		Preload("Expenses", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("Expenses.User").
		Preload("Sale").
		Preload("Sale.Customer").
		Preload("Sale.Seller").
		Preload("TestDrives", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("TestDrives.Customer").
		Preload("Interests").
		Preload("Interests.Customer").
		First(&car, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepo) FindByVIN(vin string) (*model.Car, error) {
	var car model.Car
	err := r.db.First(&car, "vin = ?", vin).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// FindForSale runs inside the sale transaction and takes the row lock
// that closes the double-sale race.
func (r *carRepo) FindForSale(tx *gorm.DB, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Expenses").
		Preload("Sale").
		First(&car, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepo) FindInStock() ([]model.Car, error) {
	var cars []model.Car
	err := r.db.
		Preload("Expenses").
		Where("status <> ?", model.CarSold).
		Find(&cars).Error
	return cars, err
}

func (r *carRepo) CountInStockByStatus() ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&model.Car{}).
		Select("status, COUNT(*) as count").
		Where("status <> ?", model.CarSold).
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *carRepo) Update(car *model.Car) error {
	return r.db.Save(car).Error
}

// UpdateStatus accepts the transaction handle so the status flip can be
// atomic with the sale write.
func (r *carRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.CarStatus) error {
	return tx.Model(&model.Car{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *carRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Car{}, "id = ?", id).Error
}
