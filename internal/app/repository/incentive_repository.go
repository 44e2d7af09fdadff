package repository

import (
	"time"

	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"gorm.io/gorm"
)

type IncentiveRepository interface {
	Create(incentive *model.Incentive) error
	Update(incentive *model.Incentive) error
	Delete(id uint) error
	FindByID(id uint) (*model.Incentive, error)
	FindByBusinessID(businessID uint) ([]model.Incentive, error)
	FindByBusinessIDAndActive(businessID uint, active bool) ([]model.Incentive, error)
	CountActiveEndedBefore(day time.Time) (int64, error)
}

type incentiveRepository struct {
	db *gorm.DB
}

func NewIncentiveRepository(db *gorm.DB) IncentiveRepository {
	return &incentiveRepository{db: db}
}

func (r *incentiveRepository) Create(incentive *model.Incentive) error {
	logger.Debug("Creating incentive in database", map[string]interface{}{
		"title":       incentive.Title,
		"business_id": incentive.BusinessID,
	})

	if err := r.db.Create(incentive).Error; err != nil {
		logger.Error("Failed to create incentive in database", err, map[string]interface{}{
			"title":       incentive.Title,
			"business_id": incentive.BusinessID,
		})
		return err
	}

	logger.Debug("Incentive created in database", map[string]interface{}{
		"incentive_id": incentive.ID,
	})
	return nil
}

func (r *incentiveRepository) Update(incentive *model.Incentive) error {
	logger.Debug("Updating incentive in database", map[string]interface{}{
		"incentive_id": incentive.ID,
	})

	if err := r.db.Save(incentive).Error; err != nil {
		logger.Error("Failed to update incentive in database", err, map[string]interface{}{
			"incentive_id": incentive.ID,
		})
		return err
	}

	return nil
}

func (r *incentiveRepository) Delete(id uint) error {
	logger.Debug("Deleting incentive from database", map[string]interface{}{
		"incentive_id": id,
	})

	if err := r.db.Delete(&model.Incentive{}, id).Error; err != nil {
		logger.Error("Failed to delete incentive from database", err, map[string]interface{}{
			"incentive_id": id,
		})
		return err
	}

	return nil
}

func (r *incentiveRepository) FindByID(id uint) (*model.Incentive, error) {
	logger.Debug("Finding incentive by ID", map[string]interface{}{
		"incentive_id": id,
	})

	var incentive model.Incentive
	if err := r.db.Preload("Types").First(&incentive, id).Error; err != nil {
		logger.Error("Failed to find incentive", err, map[string]interface{}{
			"incentive_id": id,
		})
		return nil, err
	}

	return &incentive, nil
}

func (r *incentiveRepository) FindByBusinessID(businessID uint) ([]model.Incentive, error) {
	logger.Debug("Finding incentives by business", map[string]interface{}{
		"business_id": businessID,
	})

	var incentives []model.Incentive
	if err := r.db.
		Preload("Types").
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&incentives).Error; err != nil {
		logger.Error("Failed to find incentives by business", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	return incentives, nil
}

// FindByBusinessIDAndActive filters on the stored is_active flag, not on
// date validity. Incentive types are eagerly populated.
func (r *incentiveRepository) FindByBusinessIDAndActive(businessID uint, active bool) ([]model.Incentive, error) {
	logger.Debug("Finding incentives by business and active flag", map[string]interface{}{
		"business_id": businessID,
		"active":      active,
	})

	var incentives []model.Incentive
	if err := r.db.
		Preload("Types").
		Where("business_id = ? AND is_active = ?", businessID, active).
		Order("id ASC").
		Find(&incentives).Error; err != nil {
		logger.Error("Failed to find incentives by business and active flag", err, map[string]interface{}{
			"business_id": businessID,
			"active":      active,
		})
		return nil, err
	}

	logger.Debug("Incentives found", map[string]interface{}{
		"business_id": businessID,
		"count":       len(incentives),
	})
	return incentives, nil
}

// CountActiveEndedBefore counts incentives still flagged active whose
// end date has already passed. Used by the nightly audit for reporting;
// nothing flips the flag automatically.
func (r *incentiveRepository) CountActiveEndedBefore(day time.Time) (int64, error) {
	var count int64
	if err := r.db.
		Model(&model.Incentive{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, day).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count expired active incentives", err)
		return 0, err
	}

	return count, nil
}
