package repository

import (
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"gorm.io/gorm"
)

// LookupRepository serves the reference entities used by forms and
// filters: business types, incentive types, US states. All lists come
// back in display order.
type LookupRepository interface {
	FindAllBusinessTypes() ([]model.BusinessType, error)
	FindBusinessTypeByID(id uint) (*model.BusinessType, error)
	FindAllIncentiveTypes() ([]model.IncentiveType, error)
	FindIncentiveTypesByIDs(ids []uint) ([]model.IncentiveType, error)
	FindAllStates() ([]model.UsState, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) FindAllBusinessTypes() ([]model.BusinessType, error) {
	var types []model.BusinessType
	if err := r.db.Order("display_order ASC").Find(&types).Error; err != nil {
		logger.Error("Failed to find business types", err, nil)
		return nil, err
	}
	return types, nil
}

func (r *lookupRepository) FindBusinessTypeByID(id uint) (*model.BusinessType, error) {
	var businessType model.BusinessType
	if err := r.db.First(&businessType, id).Error; err != nil {
		logger.Error("Failed to find business type", err, map[string]interface{}{
			"business_type_id": id,
		})
		return nil, err
	}
	return &businessType, nil
}

func (r *lookupRepository) FindAllIncentiveTypes() ([]model.IncentiveType, error) {
	var types []model.IncentiveType
	if err := r.db.Order("display_order ASC").Find(&types).Error; err != nil {
		logger.Error("Failed to find incentive types", err, nil)
		return nil, err
	}
	return types, nil
}

func (r *lookupRepository) FindIncentiveTypesByIDs(ids []uint) ([]model.IncentiveType, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var types []model.IncentiveType
	if err := r.db.Where("id IN ?", ids).Order("display_order ASC").Find(&types).Error; err != nil {
		logger.Error("Failed to find incentive types by IDs", err, map[string]interface{}{
			"ids": ids,
		})
		return nil, err
	}
	return types, nil
}

func (r *lookupRepository) FindAllStates() ([]model.UsState, error) {
	var states []model.UsState
	if err := r.db.Order("code ASC").Find(&states).Error; err != nil {
		logger.Error("Failed to find US states", err, nil)
		return nil, err
	}
	return states, nil
}
