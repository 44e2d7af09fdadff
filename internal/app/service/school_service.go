package service

import (
	"errors"
	"strings"

	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSchoolNotFound = errors.New("school not found")
	ErrInvalidEmail   = errors.New("email address must contain '@'")
)

// SchoolLookup is the capability the domain resolver consumes: an exact
// single-domain query. A miss is ErrSchoolNotFound; any other error is
// a storage failure and stops the resolution.
type SchoolLookup func(domain string) (*model.School, error)

// ResolveSchoolDomain matches an email's host to the most specific
// registered school domain by progressively stripping subdomain labels.
// For "alex@student.kirkwood.edu" it tries "student.kirkwood.edu", then
// "kirkwood.edu", and stops before a dot-less fragment ("edu" is the
// last candidate ever looked up only if it still contains a dot, which
// it does not). Returns ErrInvalidEmail when the address has no '@'.
func ResolveSchoolDomain(email string, lookup SchoolLookup) (*model.School, error) {
	at := strings.Index(email, "@")
	if at < 0 {
		return nil, ErrInvalidEmail
	}

	domain := email[at+1:]

	for strings.Contains(domain, ".") {
		school, err := lookup(domain)
		if err == nil {
			return school, nil
		}
		if !errors.Is(err, ErrSchoolNotFound) {
			return nil, err
		}

		// Strip the first label: "student.kirkwood.edu" -> "kirkwood.edu"
		domain = domain[strings.Index(domain, ".")+1:]
	}

	return nil, ErrSchoolNotFound
}

type SchoolService interface {
	ListSchools() ([]model.School, error)
	GetSchoolByID(id uint) (*model.School, error)
	CreateSchool(school *model.School) (*model.School, error)
	DeleteSchool(id uint) error
	ResolveSchoolForEmail(email string) (*model.School, error)
}

type schoolService struct {
	schoolRepo repository.SchoolRepository
}

func NewSchoolService(schoolRepo repository.SchoolRepository) SchoolService {
	return &schoolService{schoolRepo: schoolRepo}
}

func (s *schoolService) ListSchools() ([]model.School, error) {
	logger.Debug("Listing schools")

	schools, err := s.schoolRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list schools", err)
		return nil, err
	}

	return schools, nil
}

func (s *schoolService) GetSchoolByID(id uint) (*model.School, error) {
	logger.Debug("Fetching school by ID", map[string]interface{}{
		"school_id": id,
	})

	school, err := s.schoolRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("School not found", map[string]interface{}{
				"school_id": id,
			})
			return nil, ErrSchoolNotFound
		}
		logger.Error("Failed to fetch school", err, map[string]interface{}{
			"school_id": id,
		})
		return nil, err
	}

	return school, nil
}

func (s *schoolService) CreateSchool(school *model.School) (*model.School, error) {
	logger.Info("Creating school", map[string]interface{}{
		"name":   school.Name,
		"domain": school.Domain,
	})

	fields := map[string]string{}
	if strings.TrimSpace(school.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(school.Domain) == "" {
		fields["domain"] = "domain is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if school.Status == "" {
		school.Status = model.SchoolStatusActive
	}

	// Duplicate domain violations surface from storage and propagate
	// unchanged; the boundary maps them to a conflict response.
	if err := s.schoolRepo.Create(school); err != nil {
		logger.Error("Failed to create school", err, map[string]interface{}{
			"domain": school.Domain,
		})
		return nil, err
	}

	logger.Info("School created", map[string]interface{}{
		"school_id": school.ID,
		"domain":    school.Domain,
	})
	return school, nil
}

func (s *schoolService) DeleteSchool(id uint) error {
	logger.Info("Deleting school", map[string]interface{}{
		"school_id": id,
	})

	if err := s.schoolRepo.Delete(id); err != nil {
		logger.Error("Failed to delete school", err, map[string]interface{}{
			"school_id": id,
		})
		return err
	}

	return nil
}

// ResolveSchoolForEmail runs the domain resolver against the school store
func (s *schoolService) ResolveSchoolForEmail(email string) (*model.School, error) {
	logger.Debug("Resolving school for email", map[string]interface{}{
		"email": email,
	})

	school, err := ResolveSchoolDomain(email, func(domain string) (*model.School, error) {
		found, err := s.schoolRepo.FindByDomain(domain)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
		return found, nil
	})
	if err != nil {
		if errors.Is(err, ErrSchoolNotFound) {
			logger.Debug("No school matched email domain", map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}

	logger.Info("School resolved for email", map[string]interface{}{
		"email":     email,
		"school_id": school.ID,
		"domain":    school.Domain,
	})
	return school, nil
}
