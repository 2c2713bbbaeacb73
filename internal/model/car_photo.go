package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarPhoto references an image stored on the photo CDN. Upload happens
// outside this service; only the URL and CDN public id are kept here.
type CarPhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CarID     uuid.UUID `gorm:"type:uuid;not null;index" json:"carId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	PublicID  string    `gorm:"type:varchar(255)" json:"publicId"`
	IsPrimary bool      `gorm:"default:false" json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *CarPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
