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
	ErrIncentiveNotFound     = errors.New("incentive not found")
	ErrIncentiveTypeNotFound = errors.New("incentive type not found")
)

type IncentiveService interface {
	GetActiveIncentivesForBusiness(businessID uint) ([]model.IncentiveSummary, error)
	GetAllIncentivesForBusiness(businessID uint) ([]model.Incentive, error)
	GetIncentiveByID(id uint) (*model.Incentive, error)
	CreateIncentive(incentive *model.Incentive, typeIDs []uint) (*model.Incentive, error)
	UpdateIncentive(incentive *model.Incentive, typeIDs []uint) (*model.Incentive, error)
	DeleteIncentive(id uint) error
	CountExpiredActive(day time.Time) (int64, error)
}

type incentiveService struct {
	db            *gorm.DB
	incentiveRepo repository.IncentiveRepository
	businessRepo  repository.BusinessRepository
	lookupRepo    repository.LookupRepository
}

func NewIncentiveService(
	db *gorm.DB,
	incentiveRepo repository.IncentiveRepository,
	businessRepo repository.BusinessRepository,
	lookupRepo repository.LookupRepository,
) IncentiveService {
	return &incentiveService{
		db:            db,
		incentiveRepo: incentiveRepo,
		businessRepo:  businessRepo,
		lookupRepo:    lookupRepo,
	}
}

// GetActiveIncentivesForBusiness returns display projections of the
// business's incentives whose stored active flag is set, evaluated
// against today's date for the validity labels.
func (s *incentiveService) GetActiveIncentivesForBusiness(businessID uint) ([]model.IncentiveSummary, error) {
	if _, err := s.businessRepo.FindByID(businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	incentives, err := s.incentiveRepo.FindByBusinessIDAndActive(businessID, true)
	if err != nil {
		logger.Error("Failed to fetch active incentives", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	today := time.Now()
	summaries := make([]model.IncentiveSummary, 0, len(incentives))
	for _, incentive := range incentives {
		summaries = append(summaries, model.NewIncentiveSummary(&incentive, today))
	}

	return summaries, nil
}

func (s *incentiveService) GetAllIncentivesForBusiness(businessID uint) ([]model.Incentive, error) {
	if _, err := s.businessRepo.FindByID(businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	incentives, err := s.incentiveRepo.FindByBusinessID(businessID)
	if err != nil {
		logger.Error("Failed to fetch incentives", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	return incentives, nil
}

func (s *incentiveService) GetIncentiveByID(id uint) (*model.Incentive, error) {
	incentive, err := s.incentiveRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Incentive not found", map[string]interface{}{
				"incentive_id": id,
			})
			return nil, ErrIncentiveNotFound
		}
		logger.Error("Failed to fetch incentive", err, map[string]interface{}{
			"incentive_id": id,
		})
		return nil, err
	}

	return incentive, nil
}

func (s *incentiveService) CreateIncentive(incentive *model.Incentive, typeIDs []uint) (*model.Incentive, error) {
	logger.Info("Creating incentive", map[string]interface{}{
		"title":       incentive.Title,
		"business_id": incentive.BusinessID,
	})

	fields := map[string]string{}
	if strings.TrimSpace(incentive.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(incentive.Description) == "" {
		fields["description"] = "description is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.businessRepo.FindByID(incentive.BusinessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	types, err := s.resolveTypes(typeIDs)
	if err != nil {
		return nil, err
	}
	incentive.Types = types

	if err := s.incentiveRepo.Create(incentive); err != nil {
		logger.Error("Failed to create incentive", err, map[string]interface{}{
			"title": incentive.Title,
		})
		return nil, err
	}

	logger.Info("Incentive created", map[string]interface{}{
		"incentive_id": incentive.ID,
		"business_id":  incentive.BusinessID,
	})
	return incentive, nil
}

func (s *incentiveService) UpdateIncentive(incentive *model.Incentive, typeIDs []uint) (*model.Incentive, error) {
	existing, err := s.incentiveRepo.FindByID(incentive.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncentiveNotFound
		}
		return nil, err
	}

	if incentive.Title != "" {
		existing.Title = incentive.Title
	}
	if incentive.Description != "" {
		existing.Description = incentive.Description
	}
	existing.Terms = incentive.Terms
	existing.DiscountAmount = incentive.DiscountAmount
	existing.DiscountPercentage = incentive.DiscountPercentage
	existing.StartDate = incentive.StartDate
	existing.EndDate = incentive.EndDate
	existing.VerificationRequired = incentive.VerificationRequired
	existing.IsActive = incentive.IsActive

	if typeIDs != nil {
		types, err := s.resolveTypes(typeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(existing).Association("Types").Replace(types); err != nil {
			logger.Error("Failed to replace incentive types", err, map[string]interface{}{
				"incentive_id": existing.ID,
			})
			return nil, err
		}
		existing.Types = types
	}

	if err := s.incentiveRepo.Update(existing); err != nil {
		logger.Error("Failed to update incentive", err, map[string]interface{}{
			"incentive_id": existing.ID,
		})
		return nil, err
	}

	logger.Info("Incentive updated", map[string]interface{}{
		"incentive_id": existing.ID,
	})
	return existing, nil
}

// DeleteIncentive soft deletes a single incentive. Deleting one does
// not touch its business; the reverse cascade only runs when the
// business itself is deleted.
func (s *incentiveService) DeleteIncentive(id uint) error {
	logger.Info("Deleting incentive", map[string]interface{}{
		"incentive_id": id,
	})

	if _, err := s.incentiveRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIncentiveNotFound
		}
		return err
	}

	if err := s.incentiveRepo.Delete(id); err != nil {
		logger.Error("Failed to delete incentive", err, map[string]interface{}{
			"incentive_id": id,
		})
		return err
	}

	return nil
}

func (s *incentiveService) CountExpiredActive(day time.Time) (int64, error) {
	return s.incentiveRepo.CountActiveEndedBefore(day)
}

func (s *incentiveService) resolveTypes(typeIDs []uint) ([]model.IncentiveType, error) {
	if len(typeIDs) == 0 {
		return nil, nil
	}

	// Repeated IDs resolve to a single row, so compare against the
	// distinct count
	unique := make(map[uint]struct{}, len(typeIDs))
	for _, id := range typeIDs {
		unique[id] = struct{}{}
	}

	types, err := s.lookupRepo.FindIncentiveTypesByIDs(typeIDs)
	if err != nil {
		return nil, err
	}
	if len(types) != len(unique) {
		return nil, ErrIncentiveTypeNotFound
	}

	return types, nil
}
