package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PayCash         PaymentMethod = "CASH"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
	PayFinancing    PaymentMethod = "FINANCING"
	PayPaymentPlan  PaymentMethod = "PAYMENT_PLAN"
)

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "PENDING"
	PaymentDepositPaid PaymentStatus = "DEPOSIT_PAID"
	PaymentPaidInFull  PaymentStatus = "PAID_IN_FULL"
)

// Sale links one car to one customer. Profit is computed once at sale
// time and persisted, so expense edits after the fact never change a
// completed sale's recorded profit.
type Sale struct {
	BaseModel
	CarID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"carId" validate:"uuid_required"`
	CustomerID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"customerId" validate:"uuid_required"`
	SellerID      uuid.UUID     `gorm:"type:uuid;not null" json:"sellerId"`
	SalePrice     float64       `gorm:"not null" json:"salePrice" validate:"min=0"`
	SaleDate      time.Time     `gorm:"not null;index" json:"saleDate" validate:"required"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"paymentMethod" validate:"required,oneof=CASH BANK_TRANSFER FINANCING PAYMENT_PLAN"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"paymentStatus" validate:"omitempty,oneof=PENDING DEPOSIT_PAID PAID_IN_FULL"`
	Commission    *float64      `json:"commission"`
	Profit        float64       `gorm:"not null" json:"profit"`

	Car      *Car      `json:"car,omitempty" validate:"-"`
	Customer *Customer `json:"customer,omitempty" validate:"-"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty" validate:"-"`
}

// SaleResponse is the API shape of a sale. The embedded car goes
// through CarResponse so purchase-price redaction applies uniformly.
type SaleResponse struct {
	ID            uuid.UUID     `json:"id"`
	CarID         uuid.UUID     `json:"carId"`
	CustomerID    uuid.UUID     `json:"customerId"`
	SellerID      uuid.UUID     `json:"sellerId"`
	SalePrice     float64       `json:"salePrice"`
	SaleDate      time.Time     `json:"saleDate"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Commission    *float64      `json:"commission,omitempty"`
	Profit        float64       `json:"profit"`
	TotalExpenses float64       `json:"totalExpenses"`
	Car           *CarResponse  `json:"car,omitempty"`
	Customer      *Customer     `json:"customer,omitempty"`
	Seller        *UserResponse `json:"seller,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ToResponse converts Sale to SaleResponse, redacting the car's
// purchase price when asked.
func (s *Sale) ToResponse(redactPurchase bool) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		CarID:         s.CarID,
		CustomerID:    s.CustomerID,
		SellerID:      s.SellerID,
		SalePrice:     s.SalePrice,
		SaleDate:      s.SaleDate,
		PaymentMethod: s.PaymentMethod,
		PaymentStatus: s.PaymentStatus,
		Commission:    s.Commission,
		Profit:        s.Profit,
		Customer:      s.Customer,
		CreatedAt:     s.CreatedAt,
	}
	if s.Car != nil {
		car := s.Car.ToResponse(redactPurchase)
		resp.Car = &car
		resp.TotalExpenses = car.TotalExpenses
	}
	if s.Seller != nil {
		seller := s.Seller.ToResponse()
		resp.Seller = &seller
	}
	return resp
}
