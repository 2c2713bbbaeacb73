package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestDrive records a customer taking a car out.
type TestDrive struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CarID      uuid.UUID `gorm:"type:uuid;not null;index" json:"carId" validate:"uuid_required"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId" validate:"uuid_required"`
	Date       time.Time `gorm:"not null" json:"date" validate:"required"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	IDCopyURL  string    `gorm:"type:text" json:"idCopyUrl,omitempty"` // scan of the driver's ID, stored on the CDN
	CreatedAt  time.Time `json:"createdAt"`

	Car      *Car      `json:"car,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

func (td *TestDrive) BeforeCreate(tx *gorm.DB) error {
	if td.ID == uuid.Nil {
		td.ID = uuid.New()
	}
	return nil
}
