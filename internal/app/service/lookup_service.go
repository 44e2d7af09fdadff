package service

import (
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
)

type LookupService interface {
	ListBusinessTypes() ([]model.BusinessType, error)
	ListIncentiveTypes() ([]model.IncentiveType, error)
	ListStates() ([]model.UsState, error)
}

type lookupService struct {
	lookupRepo repository.LookupRepository
}

func NewLookupService(lookupRepo repository.LookupRepository) LookupService {
	return &lookupService{lookupRepo: lookupRepo}
}

func (s *lookupService) ListBusinessTypes() ([]model.BusinessType, error) {
	return s.lookupRepo.FindAllBusinessTypes()
}

func (s *lookupService) ListIncentiveTypes() ([]model.IncentiveType, error) {
	return s.lookupRepo.FindAllIncentiveTypes()
}

func (s *lookupService) ListStates() ([]model.UsState, error) {
	return s.lookupRepo.FindAllStates()
}
