package service

import (
	"errors"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	ListCustomers(f repository.CustomerFilter) ([]model.Customer, error)
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	CreateCustomer(req *CustomerRequest) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, req *CustomerRequest) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
}

// CustomerRequest is the POST/PUT /customers body.
type CustomerRequest struct {
	Name         string               `json:"name" validate:"required"`
	Phone        string               `json:"phone" validate:"required"`
	Email        string               `json:"email" validate:"omitempty,email"`
	Address      string               `json:"address"`
	Status       model.CustomerStatus `json:"status" validate:"omitempty,oneof=NEW_LEAD CONTACTED TEST_DRIVE_DONE NEGOTIATING SOLD LOST"`
	LeadSource   model.LeadSource     `json:"leadSource" validate:"required,oneof=WALK_IN PHONE OLX STANDVIRTUAL FACEBOOK REFERRAL OTHER"`
	Budget       *float64             `json:"budget" validate:"omitempty,min=0"`
	Notes        string               `json:"notes"`
	FollowUpDate string               `json:"followUpDate"`
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) ListCustomers(f repository.CustomerFilter) ([]model.Customer, error) {
	return s.customerRepo.FindAll(f)
}

func (s *customerService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) CreateCustomer(req *CustomerRequest) (*model.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.LeadNew
	}

	customer := &model.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Status:     status,
		LeadSource: req.LeadSource,
		Budget:     req.Budget,
		Notes:      req.Notes,
	}

	if req.FollowUpDate != "" {
		followUp, err := parseDate("followUpDate", req.FollowUpDate)
		if err != nil {
			return nil, err
		}
		customer.FollowUpDate = &followUp
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *CustomerRequest) (*model.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	if req.Status != "" {
		customer.Status = req.Status
	}
	customer.LeadSource = req.LeadSource
	customer.Budget = req.Budget
	customer.Notes = req.Notes

	customer.FollowUpDate = nil
	if req.FollowUpDate != "" {
		followUp, err := parseDate("followUpDate", req.FollowUpDate)
		if err != nil {
			return nil, err
		}
		customer.FollowUpDate = &followUp
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.customerRepo.Delete(id)
}
