package repository

import (
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"gorm.io/gorm"
)

type BusinessFilter struct {
	BusinessTypeID uint
	Search         string
	Page           int // 1-based
	PageSize       int
}

type BusinessListResult struct {
	Businesses []model.Business
	TotalCount int64
	Page       int
	PageSize   int
}

type BusinessRepository interface {
	Create(business *model.Business) error
	Update(business *model.Business) error
	Delete(id uint) error
	FindAll(filter BusinessFilter) (*BusinessListResult, error)
	FindByID(id uint) (*model.Business, error)
	FindByIDWithDetails(id uint) (*model.Business, error)
	CreateLocation(location *model.BusinessLocation) error
	DeleteLocation(id uint) error
	BulkCreate(businesses []model.Business, batchSize int) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *model.Business) error {
	logger.Debug("Creating business in database", map[string]interface{}{
		"name":             business.Name,
		"business_type_id": business.BusinessTypeID,
	})

	if err := r.db.Create(business).Error; err != nil {
		logger.Error("Failed to create business in database", err, map[string]interface{}{
			"name": business.Name,
		})
		return err
	}

	logger.Debug("Business created in database", map[string]interface{}{
		"business_id": business.ID,
		"name":        business.Name,
	})
	return nil
}

func (r *businessRepository) Update(business *model.Business) error {
	logger.Debug("Updating business in database", map[string]interface{}{
		"business_id": business.ID,
		"name":        business.Name,
	})

	if err := r.db.Save(business).Error; err != nil {
		logger.Error("Failed to update business in database", err, map[string]interface{}{
			"business_id": business.ID,
		})
		return err
	}

	return nil
}

// Delete soft deletes the business row only. Cascading the delete to
// locations and incentives is owned by the service transaction.
func (r *businessRepository) Delete(id uint) error {
	logger.Debug("Deleting business from database", map[string]interface{}{
		"business_id": id,
	})

	if err := r.db.Delete(&model.Business{}, id).Error; err != nil {
		logger.Error("Failed to delete business from database", err, map[string]interface{}{
			"business_id": id,
		})
		return err
	}

	return nil
}

func (r *businessRepository) FindAll(filter BusinessFilter) (*BusinessListResult, error) {
	logger.Debug("Finding businesses", map[string]interface{}{
		"business_type_id": filter.BusinessTypeID,
		"search":           filter.Search,
		"page":             filter.Page,
	})

	query := r.db.Model(&model.Business{}).Preload("BusinessType")

	if filter.BusinessTypeID != 0 {
		query = query.Where("business_type_id = ?", filter.BusinessTypeID)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		logger.Error("Failed to count businesses", err, nil)
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var businesses []model.Business
	if err := query.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&businesses).Error; err != nil {
		logger.Error("Failed to find businesses", err, map[string]interface{}{
			"page": page,
		})
		return nil, err
	}

	logger.Debug("Businesses found", map[string]interface{}{
		"count":       len(businesses),
		"total_count": totalCount,
	})
	return &BusinessListResult{
		Businesses: businesses,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (r *businessRepository) FindByID(id uint) (*model.Business, error) {
	logger.Debug("Finding business by ID", map[string]interface{}{
		"business_id": id,
	})

	var business model.Business
	if err := r.db.Preload("BusinessType").First(&business, id).Error; err != nil {
		logger.Error("Failed to find business", err, map[string]interface{}{
			"business_id": id,
		})
		return nil, err
	}

	return &business, nil
}

// FindByIDWithDetails loads the business with its live locations and their
// addresses. Incentives are not preloaded; callers that need them query the
// active set separately. Soft-deleted children are filtered by the default
// read path.
func (r *businessRepository) FindByIDWithDetails(id uint) (*model.Business, error) {
	logger.Debug("Finding business with details", map[string]interface{}{
		"business_id": id,
	})

	var business model.Business
	if err := r.db.
		Preload("BusinessType").
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Address").Order("is_primary DESC, id ASC")
		}).
		First(&business, id).Error; err != nil {
		logger.Error("Failed to find business with details", err, map[string]interface{}{
			"business_id": id,
		})
		return nil, err
	}

	return &business, nil
}

func (r *businessRepository) CreateLocation(location *model.BusinessLocation) error {
	logger.Debug("Creating business location", map[string]interface{}{
		"business_id": location.BusinessID,
		"name":        location.Name,
	})

	if err := r.db.Create(location).Error; err != nil {
		logger.Error("Failed to create business location", err, map[string]interface{}{
			"business_id": location.BusinessID,
		})
		return err
	}

	return nil
}

// BulkCreate inserts businesses with their nested locations and
// addresses in batches. Used by the XLSX importer.
func (r *businessRepository) BulkCreate(businesses []model.Business, batchSize int) error {
	logger.Info("Bulk creating businesses", map[string]interface{}{
		"count":      len(businesses),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(businesses, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create businesses", err, map[string]interface{}{
			"count": len(businesses),
		})
		return err
	}

	return nil
}

func (r *businessRepository) DeleteLocation(id uint) error {
	logger.Debug("Deleting business location", map[string]interface{}{
		"location_id": id,
	})

	if err := r.db.Delete(&model.BusinessLocation{}, id).Error; err != nil {
		logger.Error("Failed to delete business location", err, map[string]interface{}{
			"location_id": id,
		})
		return err
	}

	return nil
}
