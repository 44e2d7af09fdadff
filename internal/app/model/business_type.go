package model

import (
	"time"
)

// BusinessType categorizes businesses for listing and form dropdowns.
// Examples: Automotive, Entertainment, Hardware, Pharmacy, Restaurant,
// Retail, Technology, Other.
type BusinessType struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `gorm:"index" json:"display_order"` // ascending sort key for presentation
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (BusinessType) TableName() string {
	return "business_types"
}
