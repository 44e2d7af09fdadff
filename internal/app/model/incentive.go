package model

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// displayDateFormat is the layout used for validity display strings (e.g. "Dec 30, 2026")
const displayDateFormat = "Jan 2, 2006"

// Incentive is a discount or special offer a business extends to veterans,
// active military, first responders, and their families.
type Incentive struct {
	ID                   uint            `gorm:"primarykey" json:"id"`
	Title                string          `gorm:"not null" json:"title"`                          // required, non-blank
	Description          string          `gorm:"type:text;not null" json:"description"`          // required, non-blank
	DiscountAmount       *float64        `gorm:"type:decimal(10,2)" json:"discount_amount"`      // fixed currency discount
	DiscountPercentage   *float64        `gorm:"type:decimal(5,2)" json:"discount_percentage"`   // 0-100 scale
	Terms                string          `gorm:"type:text" json:"terms"`                         // terms and conditions
	VerificationRequired string          `json:"verification_required"`                          // e.g. "Military ID"
	StartDate            *time.Time      `gorm:"type:date" json:"start_date"`                    // nil means valid from the start
	EndDate              *time.Time      `gorm:"type:date" json:"end_date"`                      // nil means no expiration
	IsActive             bool            `gorm:"default:true;index" json:"is_active"`
	BusinessID           uint            `gorm:"not null;index" json:"business_id"`
	SubmittedByUserID    *uint           `json:"submitted_by_user_id,omitempty"`
	Types                []IncentiveType `gorm:"many2many:business_incentive_types;" json:"types,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Incentive) TableName() string {
	return "incentives"
}

// dateOnly truncates a timestamp to its calendar date
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsCurrentlyValid reports whether the incentive is valid on the given day.
// The caller supplies today so the check stays deterministic.
func (i *Incentive) IsCurrentlyValid(today time.Time) bool {
	day := dateOnly(today)

	// No start date means valid from the start
	afterStart := i.StartDate == nil || !day.Before(dateOnly(*i.StartDate))

	// No end date means no expiration
	beforeEnd := i.EndDate == nil || !day.After(dateOnly(*i.EndDate))

	return afterStart && beforeEnd && i.IsActive
}

// FormattedDiscount renders the discount for display: "10%", "$5.00 off",
// or "See details" when neither field carries a positive value.
// Percentage takes priority when both are set.
func (i *Incentive) FormattedDiscount() string {
	if i.DiscountPercentage != nil && *i.DiscountPercentage > 0 {
		return strconv.FormatFloat(*i.DiscountPercentage, 'f', -1, 64) + "%"
	}
	if i.DiscountAmount != nil && *i.DiscountAmount > 0 {
		return fmt.Sprintf("$%.2f off", roundHalfUp(*i.DiscountAmount))
	}
	return "See details"
}

// roundHalfUp rounds to two decimal places, ties away from zero.
// fmt's %.2f rounds half to even, which disagrees on values like 2.005.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ValidityDisplay renders a human readable validity hint: "Starts <date>"
// for a future start date, "Valid until <date>" when an end date exists
// (even if it has already passed), empty when neither applies.
func (i *Incentive) ValidityDisplay(today time.Time) string {
	day := dateOnly(today)

	if i.StartDate != nil && day.Before(dateOnly(*i.StartDate)) {
		return "Starts " + i.StartDate.Format(displayDateFormat)
	}

	if i.EndDate != nil {
		return "Valid until " + i.EndDate.Format(displayDateFormat)
	}

	return ""
}

// IncentiveTypeSummary is the slim type projection carried by summaries
type IncentiveTypeSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IncentiveSummary is the outward-facing incentive projection. It carries
// the computed display fields and drops the business back-reference so the
// payload never cycles.
type IncentiveSummary struct {
	ID                   uint                   `json:"id"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	DiscountAmount       *float64               `json:"discount_amount"`
	DiscountPercentage   *float64               `json:"discount_percentage"`
	VerificationRequired string                 `json:"verification_required"`
	StartDate            *time.Time             `json:"start_date"`
	EndDate              *time.Time             `json:"end_date"`
	FormattedDiscount    string                 `json:"formatted_discount"`
	CurrentlyValid       bool                   `json:"currently_valid"`
	ValidityDisplay      string                 `json:"validity_display"`
	Types                []IncentiveTypeSummary `json:"incentive_types"`
}

// NewIncentiveSummary evaluates an incentive against the given day and
// assembles its summary projection.
func NewIncentiveSummary(i *Incentive, today time.Time) IncentiveSummary {
	types := make([]IncentiveTypeSummary, 0, len(i.Types))
	for _, t := range i.Types {
		types = append(types, IncentiveTypeSummary{ID: t.ID, Name: t.Name})
	}

	return IncentiveSummary{
		ID:                   i.ID,
		Title:                i.Title,
		Description:          i.Description,
		DiscountAmount:       i.DiscountAmount,
		DiscountPercentage:   i.DiscountPercentage,
		VerificationRequired: i.VerificationRequired,
		StartDate:            i.StartDate,
		EndDate:              i.EndDate,
		FormattedDiscount:    i.FormattedDiscount(),
		CurrentlyValid:       i.IsCurrentlyValid(today),
		ValidityDisplay:      i.ValidityDisplay(today),
		Types:                types,
	}
}
