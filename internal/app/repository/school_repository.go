package repository

import (
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"gorm.io/gorm"
)

type SchoolRepository interface {
	Create(school *model.School) error
	Update(school *model.School) error
	Delete(id uint) error
	FindAll() ([]model.School, error)
	FindByID(id uint) (*model.School, error)
	FindByDomain(domain string) (*model.School, error)
}

type schoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) Create(school *model.School) error {
	logger.Debug("Creating school in database", map[string]interface{}{
		"name":   school.Name,
		"domain": school.Domain,
	})

	if err := r.db.Create(school).Error; err != nil {
		logger.Error("Failed to create school in database", err, map[string]interface{}{
			"name":   school.Name,
			"domain": school.Domain,
		})
		return err
	}

	logger.Debug("School created in database", map[string]interface{}{
		"school_id": school.ID,
	})
	return nil
}

func (r *schoolRepository) Update(school *model.School) error {
	logger.Debug("Updating school in database", map[string]interface{}{
		"school_id": school.ID,
	})

	if err := r.db.Save(school).Error; err != nil {
		logger.Error("Failed to update school in database", err, map[string]interface{}{
			"school_id": school.ID,
		})
		return err
	}

	return nil
}

func (r *schoolRepository) Delete(id uint) error {
	logger.Debug("Deleting school from database", map[string]interface{}{
		"school_id": id,
	})

	if err := r.db.Delete(&model.School{}, id).Error; err != nil {
		logger.Error("Failed to delete school from database", err, map[string]interface{}{
			"school_id": id,
		})
		return err
	}

	return nil
}

func (r *schoolRepository) FindAll() ([]model.School, error) {
	logger.Debug("Finding all schools")

	var schools []model.School
	if err := r.db.Order("name ASC").Find(&schools).Error; err != nil {
		logger.Error("Failed to find schools", err, nil)
		return nil, err
	}

	return schools, nil
}

func (r *schoolRepository) FindByID(id uint) (*model.School, error) {
	logger.Debug("Finding school by ID", map[string]interface{}{
		"school_id": id,
	})

	var school model.School
	if err := r.db.Preload("Locations").First(&school, id).Error; err != nil {
		logger.Error("Failed to find school", err, map[string]interface{}{
			"school_id": id,
		})
		return nil, err
	}

	return &school, nil
}

// FindByDomain matches exactly. Subdomain stripping lives in the
// school service, never in storage.
func (r *schoolRepository) FindByDomain(domain string) (*model.School, error) {
	logger.Debug("Finding school by domain", map[string]interface{}{
		"domain": domain,
	})

	var school model.School
	if err := r.db.Where("domain = ?", domain).First(&school).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find school by domain", err, map[string]interface{}{
				"domain": domain,
			})
		}
		return nil, err
	}

	return &school, nil
}
