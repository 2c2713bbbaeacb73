package service

import (
	"errors"
	"fmt"

	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService interface {
	RecordSale(req *RecordSaleRequest, callerID uuid.UUID) (*model.Sale, error)
	UpdateSale(id uuid.UUID, req *UpdateSaleRequest) (*model.Sale, error)
	DeleteSale(id uuid.UUID) error
	GetSale(id uuid.UUID) (*model.Sale, error)
	ListSales(f repository.SaleFilter) ([]model.Sale, error)
	SalesReport(f repository.SaleFilter) (*SalesReport, error)
}

// RecordSaleRequest is the POST /sales body.
type RecordSaleRequest struct {
	CarID         uuid.UUID           `json:"carId" validate:"uuid_required"`
	CustomerID    uuid.UUID           `json:"customerId" validate:"uuid_required"`
	SellerID      *uuid.UUID          `json:"sellerId"`
	SalePrice     float64             `json:"salePrice" validate:"min=0"`
	SaleDate      string              `json:"saleDate" validate:"required"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" validate:"required,oneof=CASH BANK_TRANSFER FINANCING PAYMENT_PLAN"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=PENDING DEPOSIT_PAID PAID_IN_FULL"`
	Commission    *float64            `json:"commission"`
}

// UpdateSaleRequest adjusts payment details on an existing sale. The
// persisted profit is deliberately not recomputed.
type UpdateSaleRequest struct {
	SalePrice     *float64             `json:"salePrice" validate:"omitempty,min=0"`
	PaymentMethod *model.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=CASH BANK_TRANSFER FINANCING PAYMENT_PLAN"`
	PaymentStatus *model.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=PENDING DEPOSIT_PAID PAID_IN_FULL"`
	Commission    *float64             `json:"commission"`
}

// SalesReportRow is one line of the sales report.
type SalesReportRow struct {
	ID            uuid.UUID           `json:"id"`
	Date          string              `json:"date"`
	Car           string              `json:"car"`
	Customer      string              `json:"customer"`
	Seller        string              `json:"seller"`
	PurchasePrice float64             `json:"purchasePrice"`
	Expenses      float64             `json:"expenses"`
	SalePrice     float64             `json:"salePrice"`
	Profit        float64             `json:"profit"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus"`
}

type SalesReportSummary struct {
	TotalSales    int     `json:"totalSales"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalProfit   float64 `json:"totalProfit"`
	TotalExpenses float64 `json:"totalExpenses"`
	AvgProfit     float64 `json:"avgProfit"`
}

type SalesReport struct {
	Sales   []SalesReportRow   `json:"sales"`
	Summary SalesReportSummary `json:"summary"`
}

type saleService struct {
	saleRepo     repository.SaleRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	txm          repository.TxManager
}

func NewSaleService(saleRepo repository.SaleRepository, carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository, txm repository.TxManager) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		txm:          txm,
	}
}

// RecordSale validates and commits a new sale as one atomic unit: the
// sale row, the car's SOLD status and the customer's SOLD status commit
// together or not at all. The optimistic pre-checks give friendly
// errors; the row lock inside the transaction is the final authority
// against two concurrent attempts on the same car.
func (s *saleService) RecordSale(req *RecordSaleRequest, callerID uuid.UUID) (*model.Sale, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	saleDate, err := parseDate("saleDate", req.SaleDate)
	if err != nil {
		return nil, err
	}

	// Preconditions outside the atomic section
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
	if _, err := s.saleRepo.FindByCarID(req.CarID); err == nil {
		return nil, ErrCarAlreadySold
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sellerID := callerID
	if req.SellerID != nil && *req.SellerID != uuid.Nil {
		sellerID = *req.SellerID
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentPending
	}

	sale := &model.Sale{
		CarID:         req.CarID,
		CustomerID:    req.CustomerID,
		SellerID:      sellerID,
		SalePrice:     req.SalePrice,
		SaleDate:      saleDate,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus,
		Commission:    req.Commission,
	}

	err = s.txm.Do(func(tx *gorm.DB) error {
		car, err := s.carRepo.FindForSale(tx, req.CarID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}
		// Re-check under the lock; a concurrent request may have won.
		if car.Status == model.CarSold || car.Sale != nil {
			return ErrCarAlreadySold
		}

		totalExpenses := car.TotalExpenses()
		sale.Profit = req.SalePrice - car.PurchasePrice - totalExpenses

		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}
		if err := s.carRepo.UpdateStatus(tx, car.ID, model.CarSold); err != nil {
			return err
		}
		return s.customerRepo.UpdateStatus(tx, req.CustomerID, model.LeadSold)
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.FindByID(sale.ID)
}

func (s *saleService) UpdateSale(id uuid.UUID, req *UpdateSaleRequest) (*model.Sale, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	if req.SalePrice != nil {
		sale.SalePrice = *req.SalePrice
	}
	if req.PaymentMethod != nil {
		sale.PaymentMethod = *req.PaymentMethod
	}
	if req.PaymentStatus != nil {
		sale.PaymentStatus = *req.PaymentStatus
	}
	if req.Commission != nil {
		sale.Commission = req.Commission
	}

	if err := s.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale reverses a sale: the row goes away and the car returns to
// AVAILABLE, atomically. The customer's status is left alone.
func (s *saleService) DeleteSale(id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSaleNotFound
		}
		return err
	}

	return s.txm.Do(func(tx *gorm.DB) error {
		if err := s.saleRepo.Delete(tx, id); err != nil {
			return err
		}
		return s.carRepo.UpdateStatus(tx, sale.CarID, model.CarAvailable)
	})
}

func (s *saleService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) ListSales(f repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.FindFiltered(f)
}

func (s *saleService) SalesReport(f repository.SaleFilter) (*SalesReport, error) {
	sales, err := s.saleRepo.FindFiltered(f)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{Sales: make([]SalesReportRow, 0, len(sales))}
	for _, sale := range sales {
		row := SalesReportRow{
			ID:            sale.ID,
			Date:          sale.SaleDate.Format("2006-01-02"),
			SalePrice:     sale.SalePrice,
			Profit:        sale.Profit,
			PaymentMethod: sale.PaymentMethod,
			PaymentStatus: sale.PaymentStatus,
		}
		if sale.Car != nil {
			row.Car = carLabel(sale.Car)
			row.PurchasePrice = sale.Car.PurchasePrice
			row.Expenses = sale.Car.TotalExpenses()
		}
		if sale.Customer != nil {
			row.Customer = sale.Customer.Name
		}
		if sale.Seller != nil {
			row.Seller = sale.Seller.Name
		} else {
			row.Seller = "N/A"
		}

		report.Summary.TotalRevenue += row.SalePrice
		report.Summary.TotalProfit += row.Profit
		report.Summary.TotalExpenses += row.Expenses
		report.Sales = append(report.Sales, row)
	}

	report.Summary.TotalSales = len(report.Sales)
	if len(report.Sales) > 0 {
		report.Summary.AvgProfit = report.Summary.TotalProfit / float64(len(report.Sales))
	}
	return report, nil
}

func carLabel(c *model.Car) string {
	return fmt.Sprintf("%s %s %d", c.Make, c.Model, c.Year)
}
