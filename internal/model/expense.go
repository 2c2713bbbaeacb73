package model

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseType string

const (
	ExpenseRepair       ExpenseType = "REPAIR"
	ExpenseDetailing    ExpenseType = "DETAILING"
	ExpenseRegistration ExpenseType = "REGISTRATION"
	ExpenseInspection   ExpenseType = "INSPECTION"
	ExpenseTransport    ExpenseType = "TRANSPORT"
	ExpenseOther        ExpenseType = "OTHER"
)

// Expense is a cost booked against a single car (repair, detailing,
// transport, ...). Rows accumulate during the car's pre-sale lifetime.
type Expense struct {
	BaseModel
	CarID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"carId" validate:"uuid_required"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null" json:"userId"`
	Type        ExpenseType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=REPAIR DETAILING REGISTRATION INSPECTION TRANSPORT OTHER"`
	Amount      float64     `gorm:"not null" json:"amount" validate:"min=0"`
	Date        time.Time   `gorm:"not null;index" json:"date" validate:"required"`
	Description string      `gorm:"type:text" json:"description" validate:"required"`
	Vendor      string      `gorm:"type:varchar(255)" json:"vendor,omitempty"`

	Car  *Car  `json:"car,omitempty" validate:"-"`
	User *User `json:"user,omitempty" validate:"-"`
}
