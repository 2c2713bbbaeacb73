package repository

import (
	"dealership-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestDriveRepository interface {
	Create(td *model.TestDrive) error
	FindFiltered(carID, customerID *uuid.UUID) ([]model.TestDrive, error)
}

type testDriveRepo struct {
	db *gorm.DB
}

func NewTestDriveRepo(db *gorm.DB) TestDriveRepository {
	return &testDriveRepo{db}
}

func (r *testDriveRepo) Create(td *model.TestDrive) error {
	return r.db.Create(td).Error
}

func (r *testDriveRepo) FindFiltered(carID, customerID *uuid.UUID) ([]model.TestDrive, error) {
	query := r.db.Model(&model.TestDrive{})
	if carID != nil {
		query = query.Where("car_id = ?", *carID)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var drives []model.TestDrive
	err := query.
		Preload("Car").
		Preload("Customer").
		Order("date DESC").
		Find(&drives).Error
	return drives, err
}
