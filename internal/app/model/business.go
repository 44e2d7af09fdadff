package model

import (
	"time"

	"gorm.io/gorm"
)

// Business is a participating business in the directory. Businesses own
// their locations and incentives; deleting a business is the authority for
// hiding its children.
type Business struct {
	ID                uint               `gorm:"primarykey" json:"id"`
	Name              string             `gorm:"not null;index" json:"name"`
	Description       string             `gorm:"type:text" json:"description"`
	Website           string             `json:"website"`
	BusinessTypeID    uint               `gorm:"not null;index" json:"business_type_id"`
	BusinessType      *BusinessType      `gorm:"foreignKey:BusinessTypeID" json:"business_type,omitempty"`
	PhotoURL          string             `json:"photo_url"`
	IsVerified        bool               `gorm:"default:false;index" json:"is_verified"`
	IsActive          bool               `gorm:"default:true;index" json:"is_active"`
	SubmittedByUserID *uint              `json:"submitted_by_user_id,omitempty"`
	Locations         []BusinessLocation `gorm:"foreignKey:BusinessID" json:"locations,omitempty"`
	Incentives        []Incentive        `gorm:"foreignKey:BusinessID" json:"incentives,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (Business) TableName() string {
	return "businesses"
}

// BusinessLocation is one physical location of a business. Chains have
// several; one of them may be flagged primary.
type BusinessLocation struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	BusinessID       uint           `gorm:"not null;index" json:"business_id"`
	AddressID        uint           `json:"address_id"`
	Address          Address        `gorm:"foreignKey:AddressID" json:"address"`
	Name             string         `json:"name"`
	Phone            string         `gorm:"type:varchar(30)" json:"phone"`
	Email            string         `json:"email"`
	HoursOfOperation string         `json:"hours_of_operation"`
	IsPrimary        bool           `gorm:"default:false" json:"is_primary"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BusinessLocation) TableName() string {
	return "business_locations"
}
