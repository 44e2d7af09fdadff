package service

import (
	"errors"
	"strings"
	"time"

	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBusinessNotFound     = errors.New("business not found")
	ErrBusinessTypeNotFound = errors.New("business type not found")
	ErrLocationNotFound     = errors.New("business location not found")
)

// BusinessDetail is the aggregate view of a business: its profile,
// locations with addresses, and the display projections of incentives
// that are active as of the request.
type BusinessDetail struct {
	Business   model.Business           `json:"business"`
	Incentives []model.IncentiveSummary `json:"incentives"`
}

type BusinessService interface {
	ListBusinesses(filter repository.BusinessFilter) (*repository.BusinessListResult, error)
	GetBusinessByID(id uint) (*model.Business, error)
	GetBusinessWithIncentives(id uint) (*BusinessDetail, error)
	CreateBusiness(business *model.Business) (*model.Business, error)
	UpdateBusiness(business *model.Business) (*model.Business, error)
	DeleteBusiness(id uint) error
	AddLocation(businessID uint, location *model.BusinessLocation) (*model.BusinessLocation, error)
	RemoveLocation(businessID, locationID uint) error
}

type businessService struct {
	db            *gorm.DB
	businessRepo  repository.BusinessRepository
	incentiveRepo repository.IncentiveRepository
	lookupRepo    repository.LookupRepository
}

func NewBusinessService(
	db *gorm.DB,
	businessRepo repository.BusinessRepository,
	incentiveRepo repository.IncentiveRepository,
	lookupRepo repository.LookupRepository,
) BusinessService {
	return &businessService{
		db:            db,
		businessRepo:  businessRepo,
		incentiveRepo: incentiveRepo,
		lookupRepo:    lookupRepo,
	}
}

func (s *businessService) ListBusinesses(filter repository.BusinessFilter) (*repository.BusinessListResult, error) {
	logger.Debug("Listing businesses", map[string]interface{}{
		"business_type_id": filter.BusinessTypeID,
		"search":           filter.Search,
		"page":             filter.Page,
	})

	result, err := s.businessRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list businesses", err)
		return nil, err
	}

	return result, nil
}

func (s *businessService) GetBusinessByID(id uint) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Business not found", map[string]interface{}{
				"business_id": id,
			})
			return nil, ErrBusinessNotFound
		}
		logger.Error("Failed to fetch business", err, map[string]interface{}{
			"business_id": id,
		})
		return nil, err
	}

	return business, nil
}

// GetBusinessWithIncentives assembles the public detail page for a
// business: the row with its type and locations, plus display
// projections of incentives whose stored active flag is set. The flag
// is the filter here; date-window checks only shape the projection.
func (s *businessService) GetBusinessWithIncentives(id uint) (*BusinessDetail, error) {
	logger.Debug("Fetching business with incentives", map[string]interface{}{
		"business_id": id,
	})

	business, err := s.businessRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Business not found", map[string]interface{}{
				"business_id": id,
			})
			return nil, ErrBusinessNotFound
		}
		logger.Error("Failed to fetch business detail", err, map[string]interface{}{
			"business_id": id,
		})
		return nil, err
	}

	incentives, err := s.incentiveRepo.FindByBusinessIDAndActive(id, true)
	if err != nil {
		logger.Error("Failed to fetch business incentives", err, map[string]interface{}{
			"business_id": id,
		})
		return nil, err
	}

	today := time.Now()
	summaries := make([]model.IncentiveSummary, 0, len(incentives))
	for _, incentive := range incentives {
		summaries = append(summaries, model.NewIncentiveSummary(&incentive, today))
	}

	return &BusinessDetail{
		Business:   *business,
		Incentives: summaries,
	}, nil
}

func (s *businessService) CreateBusiness(business *model.Business) (*model.Business, error) {
	logger.Info("Creating business", map[string]interface{}{
		"name":             business.Name,
		"business_type_id": business.BusinessTypeID,
	})

	fields := map[string]string{}
	if strings.TrimSpace(business.Name) == "" {
		fields["name"] = "name is required"
	}
	if business.BusinessTypeID == 0 {
		fields["business_type_id"] = "business_type_id is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.lookupRepo.FindBusinessTypeByID(business.BusinessTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessTypeNotFound
		}
		return nil, err
	}

	if err := s.businessRepo.Create(business); err != nil {
		logger.Error("Failed to create business", err, map[string]interface{}{
			"name": business.Name,
		})
		return nil, err
	}

	logger.Info("Business created", map[string]interface{}{
		"business_id": business.ID,
		"name":        business.Name,
	})
	return business, nil
}

func (s *businessService) UpdateBusiness(business *model.Business) (*model.Business, error) {
	existing, err := s.businessRepo.FindByID(business.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if business.BusinessTypeID != 0 && business.BusinessTypeID != existing.BusinessTypeID {
		if _, err := s.lookupRepo.FindBusinessTypeByID(business.BusinessTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBusinessTypeNotFound
			}
			return nil, err
		}
		existing.BusinessTypeID = business.BusinessTypeID
	}

	if business.Name != "" {
		existing.Name = business.Name
	}
	existing.Description = business.Description
	existing.Website = business.Website
	existing.PhotoURL = business.PhotoURL
	existing.IsVerified = business.IsVerified
	existing.IsActive = business.IsActive

	if err := s.businessRepo.Update(existing); err != nil {
		logger.Error("Failed to update business", err, map[string]interface{}{
			"business_id": existing.ID,
		})
		return nil, err
	}

	logger.Info("Business updated", map[string]interface{}{
		"business_id": existing.ID,
	})
	return existing, nil
}

// DeleteBusiness soft deletes the business together with its locations
// and incentives in one transaction. The cascade is driven here, not by
// the schema, so every dependent row gets the same deleted_at handling
// and list queries stop returning them atomically.
func (s *businessService) DeleteBusiness(id uint) error {
	logger.Info("Deleting business", map[string]interface{}{
		"business_id": id,
	})

	if _, err := s.businessRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", id).Delete(&model.Incentive{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", id).Delete(&model.BusinessLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Business{}, id).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete business", err, map[string]interface{}{
			"business_id": id,
		})
		return err
	}

	logger.Info("Business deleted", map[string]interface{}{
		"business_id": id,
	})
	return nil
}

func (s *businessService) AddLocation(businessID uint, location *model.BusinessLocation) (*model.BusinessLocation, error) {
	if _, err := s.businessRepo.FindByID(businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	fields := map[string]string{}
	if strings.TrimSpace(location.Address.StreetAddress) == "" {
		fields["street_address"] = "street_address is required"
	}
	if strings.TrimSpace(location.Address.City) == "" {
		fields["city"] = "city is required"
	}
	if strings.TrimSpace(location.Address.StateCode) == "" {
		fields["state_code"] = "state_code is required"
	}
	if strings.TrimSpace(location.Address.ZipCode) == "" {
		fields["zip_code"] = "zip_code is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	location.BusinessID = businessID
	if err := s.businessRepo.CreateLocation(location); err != nil {
		logger.Error("Failed to create business location", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	logger.Info("Business location created", map[string]interface{}{
		"business_id": businessID,
		"location_id": location.ID,
	})
	return location, nil
}

func (s *businessService) RemoveLocation(businessID, locationID uint) error {
	business, err := s.businessRepo.FindByIDWithDetails(businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	owned := false
	for _, loc := range business.Locations {
		if loc.ID == locationID {
			owned = true
			break
		}
	}
	if !owned {
		return ErrLocationNotFound
	}

	if err := s.businessRepo.DeleteLocation(locationID); err != nil {
		logger.Error("Failed to delete business location", err, map[string]interface{}{
			"business_id": businessID,
			"location_id": locationID,
		})
		return err
	}

	return nil
}
