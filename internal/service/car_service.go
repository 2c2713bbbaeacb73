package service

import (
	"errors"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarService interface {
	ListCars(f repository.CarFilter) ([]model.Car, int64, error)
	GetCar(id uuid.UUID) (*model.Car, error)
	CreateCar(req *CarRequest) (*model.Car, error)
	UpdateCar(id uuid.UUID, req *CarRequest) (*model.Car, error)
	DeleteCar(id uuid.UUID) error
}

// CarRequest is the POST/PUT /cars body.
type CarRequest struct {
	Make           string          `json:"make" validate:"required"`
	Model          string          `json:"model" validate:"required"`
	Year           int             `json:"year" validate:"required,min=1900"`
	Color          string          `json:"color" validate:"required"`
	Mileage        int             `json:"mileage" validate:"min=0"`
	VIN            string          `json:"vin" validate:"required"`
	LicensePlate   string          `json:"licensePlate"`
	PurchasePrice  float64         `json:"purchasePrice" validate:"min=0"`
	PurchaseDate   string          `json:"purchaseDate" validate:"required"`
	BoughtFrom     string          `json:"boughtFrom"`
	TargetPrice    float64         `json:"targetPrice" validate:"min=0"`
	MinimumPrice   *float64        `json:"minimumPrice" validate:"omitempty,min=0"`
	Status         model.CarStatus `json:"status" validate:"omitempty,oneof=AVAILABLE RESERVED IN_REPAIR TEST_DRIVE SOLD"`
	Location       string          `json:"location"`
	ConditionNotes string          `json:"conditionNotes"`
}

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) ListCars(f repository.CarFilter) ([]model.Car, int64, error) {
	return s.carRepo.Search(f)
}

func (s *carService) GetCar(id uuid.UUID) (*model.Car, error) {
	car, err := s.carRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) CreateCar(req *CarRequest) (*model.Car, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	purchaseDate, err := parseDate("purchaseDate", req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	if existing, err := s.carRepo.FindByVIN(req.VIN); err == nil && existing != nil {
		return nil, ErrDuplicateVIN
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.CarAvailable
	}

	car := &model.Car{
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Color:          req.Color,
		Mileage:        req.Mileage,
		VIN:            req.VIN,
		LicensePlate:   req.LicensePlate,
		PurchasePrice:  req.PurchasePrice,
		PurchaseDate:   purchaseDate,
		BoughtFrom:     req.BoughtFrom,
		TargetPrice:    req.TargetPrice,
		MinimumPrice:   req.MinimumPrice,
		Status:         status,
		Location:       req.Location,
		ConditionNotes: req.ConditionNotes,
	}

	if err := s.carRepo.Create(car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) UpdateCar(id uuid.UUID, req *CarRequest) (*model.Car, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	purchaseDate, err := parseDate("purchaseDate", req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	car, err := s.carRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	// VIN stays unique across the lot
	if req.VIN != car.VIN {
		if existing, err := s.carRepo.FindByVIN(req.VIN); err == nil && existing != nil {
			return nil, ErrDuplicateVIN
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	car.Make = req.Make
	car.Model = req.Model
	car.Year = req.Year
	car.Color = req.Color
	car.Mileage = req.Mileage
	car.VIN = req.VIN
	car.LicensePlate = req.LicensePlate
	car.PurchasePrice = req.PurchasePrice
	car.PurchaseDate = purchaseDate
	car.BoughtFrom = req.BoughtFrom
	car.TargetPrice = req.TargetPrice
	car.MinimumPrice = req.MinimumPrice
	if req.Status != "" {
		car.Status = req.Status
	}
	car.Location = req.Location
	car.ConditionNotes = req.ConditionNotes

	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) DeleteCar(id uuid.UUID) error {
	if _, err := s.carRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCarNotFound
		}
		return err
	}
	return s.carRepo.Delete(id)
}
