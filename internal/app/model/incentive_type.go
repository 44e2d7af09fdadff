package model

import (
	"time"
)

// IncentiveType categorizes incentives by who qualifies.
// Examples: Veteran, Active Duty, First Responder, Spouse.
// Types are shared across incentives, never owned by one.
type IncentiveType struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `gorm:"index" json:"display_order"` // ascending sort key for presentation
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (IncentiveType) TableName() string {
	return "incentive_types"
}

// BusinessIncentiveType is the join row between incentives and their types
type BusinessIncentiveType struct {
	IncentiveID     uint          `gorm:"primaryKey;index" json:"incentive_id"`
	IncentiveTypeID uint          `gorm:"primaryKey;index" json:"incentive_type_id"`
	Incentive       Incentive     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IncentiveType   IncentiveType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (BusinessIncentiveType) TableName() string {
	return "business_incentive_types"
}
