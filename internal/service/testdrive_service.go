package service

import (
	"errors"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestDriveService interface {
	ListTestDrives(carID, customerID *uuid.UUID) ([]model.TestDrive, error)
	CreateTestDrive(req *TestDriveRequest) (*model.TestDrive, error)
}

// TestDriveRequest is the POST /test-drives body.
type TestDriveRequest struct {
	CarID      uuid.UUID `json:"carId" validate:"uuid_required"`
	CustomerID uuid.UUID `json:"customerId" validate:"uuid_required"`
	Date       string    `json:"date" validate:"required"`
	Notes      string    `json:"notes"`
	IDCopyURL  string    `json:"idCopyUrl"`
}

type testDriveService struct {
	testDriveRepo repository.TestDriveRepository
	carRepo       repository.CarRepository
	customerRepo  repository.CustomerRepository
}

func NewTestDriveService(testDriveRepo repository.TestDriveRepository, carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository) TestDriveService {
	return &testDriveService{
		testDriveRepo: testDriveRepo,
		carRepo:       carRepo,
		customerRepo:  customerRepo,
	}
}

func (s *testDriveService) ListTestDrives(carID, customerID *uuid.UUID) ([]model.TestDrive, error) {
	return s.testDriveRepo.FindFiltered(carID, customerID)
}

func (s *testDriveService) CreateTestDrive(req *TestDriveRequest) (*model.TestDrive, error) {
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
	if _, err := s.customerRepo.FindByID(req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	td := &model.TestDrive{
		CarID:      req.CarID,
		CustomerID: req.CustomerID,
		Date:       date,
		Notes:      req.Notes,
		IDCopyURL:  req.IDCopyURL,
	}

	if err := s.testDriveRepo.Create(td); err != nil {
		return nil, err
	}
	return td, nil
}
