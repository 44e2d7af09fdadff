package model

import (
	"strings"
	"time"
)

// Address is a street address attached to a business location
type Address struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	StreetAddress string    `gorm:"not null" json:"street_address"`
	AddressLine2  string    `json:"address_line_2"`
	City          string    `gorm:"not null" json:"city"`
	StateCode     string    `gorm:"type:varchar(2);not null" json:"state_code"` // 2-letter US state code
	ZipCode       string    `gorm:"type:varchar(10);not null" json:"zip_code"`
	Latitude      *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude     *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}

// FullAddress renders the address as a single display line
func (a *Address) FullAddress() string {
	var sb strings.Builder
	sb.WriteString(a.StreetAddress)
	if a.AddressLine2 != "" {
		sb.WriteString(", ")
		sb.WriteString(a.AddressLine2)
	}
	sb.WriteString(", ")
	sb.WriteString(a.City)
	sb.WriteString(", ")
	sb.WriteString(a.StateCode)
	sb.WriteString(" ")
	sb.WriteString(a.ZipCode)
	return sb.String()
}

// UsState is a lookup row for the 50 states plus territories
type UsState struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `gorm:"type:varchar(2);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (UsState) TableName() string {
	return "us_states"
}
