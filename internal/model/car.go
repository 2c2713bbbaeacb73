package model

import (
	"time"

	"github.com/google/uuid"
)

type CarStatus string

const (
	CarAvailable CarStatus = "AVAILABLE"
	CarReserved  CarStatus = "RESERVED"
	CarInRepair  CarStatus = "IN_REPAIR"
	CarTestDrive CarStatus = "TEST_DRIVE"
	CarSold      CarStatus = "SOLD"
)

// Car is a vehicle on the lot. A car owns its expenses and at most one
// sale; the 1:1 with Sale is enforced by the sale orchestrator, not by
// a uniqueness constraint.
type Car struct {
	BaseModel
	Make           string    `gorm:"type:varchar(100);not null;index" json:"make" validate:"required"`
	Model          string    `gorm:"type:varchar(100);not null" json:"model" validate:"required"`
	Year           int       `gorm:"not null" json:"year" validate:"required,min=1900"`
	Color          string    `gorm:"type:varchar(50)" json:"color" validate:"required"`
	Mileage        int       `gorm:"default:0" json:"mileage" validate:"min=0"`
	VIN            string    `gorm:"column:vin;type:varchar(50);uniqueIndex;not null" json:"vin" validate:"required"`
	LicensePlate   string    `gorm:"type:varchar(20)" json:"licensePlate"`
	PurchasePrice  float64   `gorm:"not null" json:"purchasePrice" validate:"min=0"`
	PurchaseDate   time.Time `gorm:"not null;index" json:"purchaseDate" validate:"required"`
	BoughtFrom     string    `gorm:"type:varchar(255)" json:"boughtFrom"`
	TargetPrice    float64   `gorm:"not null" json:"targetPrice" validate:"min=0"`
	MinimumPrice   *float64  `json:"minimumPrice"`
	Status         CarStatus `gorm:"type:varchar(20);not null;default:AVAILABLE;index" json:"status" validate:"omitempty,oneof=AVAILABLE RESERVED IN_REPAIR TEST_DRIVE SOLD"`
	Location       string    `gorm:"type:varchar(255)" json:"location"`
	ConditionNotes string    `gorm:"type:text" json:"conditionNotes"`

	// Relations
	Photos     []CarPhoto         `json:"photos,omitempty"`
	Expenses   []Expense          `json:"expenses,omitempty"`
	Sale       *Sale              `json:"sale,omitempty"`
	Interests  []CustomerInterest `json:"interests,omitempty"`
	TestDrives []TestDrive        `json:"testDrives,omitempty"`
}

// TotalExpenses sums the amounts of the loaded expense rows.
func (c *Car) TotalExpenses() float64 {
	var total float64
	for _, e := range c.Expenses {
		total += e.Amount
	}
	return total
}

// CarResponse is the API shape of a car. PurchasePrice is a pointer so
// it can be omitted entirely for the SALESPERSON role.
type CarResponse struct {
	ID             uuid.UUID          `json:"id"`
	Make           string             `json:"make"`
	Model          string             `json:"model"`
	Year           int                `json:"year"`
	Color          string             `json:"color"`
	Mileage        int                `json:"mileage"`
	VIN            string             `json:"vin"`
	LicensePlate   string             `json:"licensePlate,omitempty"`
	PurchasePrice  *float64           `json:"purchasePrice,omitempty"`
	PurchaseDate   time.Time          `json:"purchaseDate"`
	BoughtFrom     string             `json:"boughtFrom,omitempty"`
	TargetPrice    float64            `json:"targetPrice"`
	MinimumPrice   *float64           `json:"minimumPrice,omitempty"`
	Status         CarStatus          `json:"status"`
	Location       string             `json:"location,omitempty"`
	ConditionNotes string             `json:"conditionNotes,omitempty"`
	TotalExpenses  float64            `json:"totalExpenses"`
	Photos         []CarPhoto         `json:"photos,omitempty"`
	Expenses       []Expense          `json:"expenses,omitempty"`
	Sale           *Sale              `json:"sale,omitempty"`
	Interests      []CustomerInterest `json:"interests,omitempty"`
	TestDrives     []TestDrive        `json:"testDrives,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// ToResponse converts Car to CarResponse. When redactPurchase is set
// the purchase price is left out of the payload (SALESPERSON callers);
// the column itself is untouched.
func (c *Car) ToResponse(redactPurchase bool) CarResponse {
	resp := CarResponse{
		ID:             c.ID,
		Make:           c.Make,
		Model:          c.Model,
		Year:           c.Year,
		Color:          c.Color,
		Mileage:        c.Mileage,
		VIN:            c.VIN,
		LicensePlate:   c.LicensePlate,
		PurchaseDate:   c.PurchaseDate,
		BoughtFrom:     c.BoughtFrom,
		TargetPrice:    c.TargetPrice,
		MinimumPrice:   c.MinimumPrice,
		Status:         c.Status,
		Location:       c.Location,
		ConditionNotes: c.ConditionNotes,
		TotalExpenses:  c.TotalExpenses(),
		Photos:         c.Photos,
		Expenses:       c.Expenses,
		Sale:           c.Sale,
		Interests:      c.Interests,
		TestDrives:     c.TestDrives,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if !redactPurchase {
		price := c.PurchasePrice
		resp.PurchasePrice = &price
	}
	return resp
}
