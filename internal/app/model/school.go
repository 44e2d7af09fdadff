package model

import (
	"time"

	"gorm.io/gorm"
)

type SchoolStatus string

const (
	SchoolStatusActive    SchoolStatus = "ACTIVE"
	SchoolStatusInactive  SchoolStatus = "INACTIVE"
	SchoolStatusSuspended SchoolStatus = "SUSPENDED"
)

// School is an affiliated school. Its domain is matched against user email
// hosts at registration time; the domain must be unique among live rows.
type School struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	Name      string           `gorm:"not null" json:"name"`
	Domain    string           `gorm:"uniqueIndex;not null" json:"domain"` // e.g. "kirkwood.edu"
	Status    SchoolStatus     `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	Locations []SchoolLocation `gorm:"foreignKey:SchoolID" json:"locations,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (School) TableName() string {
	return "schools"
}

type SchoolLocationStatus string

const (
	SchoolLocationDraft      SchoolLocationStatus = "DRAFT"
	SchoolLocationActive     SchoolLocationStatus = "ACTIVE"
	SchoolLocationClosed     SchoolLocationStatus = "CLOSED"
	SchoolLocationComingSoon SchoolLocationStatus = "COMING_SOON"
)

// SchoolLocation is a campus or site belonging to a school
type SchoolLocation struct {
	ID          uint                 `gorm:"primarykey" json:"id"`
	SchoolID    uint                 `gorm:"not null;index" json:"school_id"`
	Name        string               `gorm:"not null" json:"name"`
	Description string               `gorm:"type:text" json:"description"`
	Address     string               `json:"address"`
	Latitude    *float64             `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   *float64             `gorm:"type:decimal(11,8)" json:"longitude"`
	Status      SchoolLocationStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (SchoolLocation) TableName() string {
	return "school_locations"
}
