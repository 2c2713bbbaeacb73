package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerStatus string

const (
	LeadNew           CustomerStatus = "NEW_LEAD"
	LeadContacted     CustomerStatus = "CONTACTED"
	LeadTestDriveDone CustomerStatus = "TEST_DRIVE_DONE"
	LeadNegotiating   CustomerStatus = "NEGOTIATING"
	LeadSold          CustomerStatus = "SOLD"
	LeadLost          CustomerStatus = "LOST"
)

type LeadSource string

const (
	SourceWalkIn       LeadSource = "WALK_IN"
	SourcePhone        LeadSource = "PHONE"
	SourceOLX          LeadSource = "OLX"
	SourceStandvirtual LeadSource = "STANDVIRTUAL"
	SourceFacebook     LeadSource = "FACEBOOK"
	SourceReferral     LeadSource = "REFERRAL"
	SourceOther        LeadSource = "OTHER"
)

// Customer is a lead tracked through the pipeline from first contact to
// SOLD or LOST.
type Customer struct {
	BaseModel
	Name         string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone        string         `gorm:"type:varchar(30);not null" json:"phone" validate:"required"`
	Email        string         `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address      string         `gorm:"type:text" json:"address"`
	Status       CustomerStatus `gorm:"type:varchar(20);not null;default:NEW_LEAD;index" json:"status" validate:"omitempty,oneof=NEW_LEAD CONTACTED TEST_DRIVE_DONE NEGOTIATING SOLD LOST"`
	LeadSource   LeadSource     `gorm:"type:varchar(20);not null" json:"leadSource" validate:"required,oneof=WALK_IN PHONE OLX STANDVIRTUAL FACEBOOK REFERRAL OTHER"`
	Budget       *float64       `json:"budget"`
	Notes        string         `gorm:"type:text" json:"notes"`
	FollowUpDate *time.Time     `gorm:"index" json:"followUpDate"`

	// Relations
	Interests  []CustomerInterest `json:"interests,omitempty"`
	TestDrives []TestDrive        `json:"testDrives,omitempty"`
	Sales      []Sale             `json:"sales,omitempty"`
}

// CustomerInterest links a customer to a car they asked about.
type CustomerInterest struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`
	CarID      uuid.UUID `gorm:"type:uuid;not null;index" json:"carId"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`

	Customer *Customer `json:"customer,omitempty"`
	Car      *Car      `json:"car,omitempty"`
}

func (ci *CustomerInterest) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

type CustomerInterestResponse struct {
	ID        uuid.UUID    `json:"id"`
	CarID     uuid.UUID    `json:"carId"`
	Notes     string       `json:"notes,omitempty"`
	Car       *CarResponse `json:"car,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

type CustomerResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Name         string                     `json:"name"`
	Phone        string                     `json:"phone"`
	Email        string                     `json:"email,omitempty"`
	Address      string                     `json:"address,omitempty"`
	Status       CustomerStatus             `json:"status"`
	LeadSource   LeadSource                 `json:"leadSource"`
	Budget       *float64                   `json:"budget,omitempty"`
	Notes        string                     `json:"notes,omitempty"`
	FollowUpDate *time.Time                 `json:"followUpDate,omitempty"`
	Interests    []CustomerInterestResponse `json:"interests,omitempty"`
	TestDrives   []TestDrive                `json:"testDrives,omitempty"`
	Sales        []SaleResponse             `json:"sales,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

// ToResponse converts Customer to CustomerResponse. Interested cars go
// through CarResponse so the purchase price redaction applies here too.
func (c *Customer) ToResponse(redactPurchase bool) CustomerResponse {
	resp := CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Status:       c.Status,
		LeadSource:   c.LeadSource,
		Budget:       c.Budget,
		Notes:        c.Notes,
		FollowUpDate: c.FollowUpDate,
		TestDrives:   c.TestDrives,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if len(c.Interests) > 0 {
		resp.Interests = make([]CustomerInterestResponse, len(c.Interests))
		for i, ci := range c.Interests {
			ir := CustomerInterestResponse{
				ID:        ci.ID,
				CarID:     ci.CarID,
				Notes:     ci.Notes,
				CreatedAt: ci.CreatedAt,
			}
			if ci.Car != nil {
				car := ci.Car.ToResponse(redactPurchase)
				ir.Car = &car
			}
			resp.Interests[i] = ir
		}
	}
	if len(c.Sales) > 0 {
		resp.Sales = make([]SaleResponse, len(c.Sales))
		for i := range c.Sales {
			resp.Sales[i] = c.Sales[i].ToResponse(redactPurchase)
		}
	}
	return resp
}
