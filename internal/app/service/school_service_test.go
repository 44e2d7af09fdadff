package service

import (
	"errors"
	"testing"

	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLookup records every domain the resolver asks about
type countingLookup struct {
	domains []string
	schools map[string]*model.School
	err     error
}

func (l *countingLookup) lookup(domain string) (*model.School, error) {
	l.domains = append(l.domains, domain)
	if l.err != nil {
		return nil, l.err
	}
	if school, ok := l.schools[domain]; ok {
		return school, nil
	}
	return nil, ErrSchoolNotFound
}

func TestResolveSchoolDomain_ExactMatch(t *testing.T) {
	lookup := &countingLookup{
		schools: map[string]*model.School{
			"kirkwood.edu": {ID: 1, Name: "Kirkwood", Domain: "kirkwood.edu"},
		},
	}

	school, err := ResolveSchoolDomain("alex@kirkwood.edu", lookup.lookup)
	require.NoError(t, err)
	assert.Equal(t, uint(1), school.ID)
	assert.Equal(t, []string{"kirkwood.edu"}, lookup.domains)
}

func TestResolveSchoolDomain_StripsSubdomains(t *testing.T) {
	lookup := &countingLookup{
		schools: map[string]*model.School{
			"kirkwood.edu": {ID: 1, Name: "Kirkwood", Domain: "kirkwood.edu"},
		},
	}

	school, err := ResolveSchoolDomain("alex@student.kirkwood.edu", lookup.lookup)
	require.NoError(t, err)
	assert.Equal(t, uint(1), school.ID)
	// Exactly two lookups: the full host, then one label stripped
	assert.Equal(t, []string{"student.kirkwood.edu", "kirkwood.edu"}, lookup.domains)
}

func TestResolveSchoolDomain_MostSpecificWins(t *testing.T) {
	lookup := &countingLookup{
		schools: map[string]*model.School{
			"student.kirkwood.edu": {ID: 2, Name: "Kirkwood Students", Domain: "student.kirkwood.edu"},
			"kirkwood.edu":         {ID: 1, Name: "Kirkwood", Domain: "kirkwood.edu"},
		},
	}

	school, err := ResolveSchoolDomain("alex@student.kirkwood.edu", lookup.lookup)
	require.NoError(t, err)
	assert.Equal(t, uint(2), school.ID)
	// First hit stops the walk
	assert.Equal(t, []string{"student.kirkwood.edu"}, lookup.domains)
}

func TestResolveSchoolDomain_NoMatch(t *testing.T) {
	lookup := &countingLookup{
		schools: map[string]*model.School{},
	}

	school, err := ResolveSchoolDomain("alex@mail.example.com", lookup.lookup)
	assert.ErrorIs(t, err, ErrSchoolNotFound)
	assert.Nil(t, school)
	// Stops once the remaining fragment has no dot: "com" is never queried
	assert.Equal(t, []string{"mail.example.com", "example.com"}, lookup.domains)
}

func TestResolveSchoolDomain_NoAtSign(t *testing.T) {
	lookup := &countingLookup{}

	school, err := ResolveSchoolDomain("not-an-email", lookup.lookup)
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Nil(t, school)
	assert.Empty(t, lookup.domains)
}

func TestResolveSchoolDomain_DotlessDomain(t *testing.T) {
	lookup := &countingLookup{}

	school, err := ResolveSchoolDomain("alex@localhost", lookup.lookup)
	assert.ErrorIs(t, err, ErrSchoolNotFound)
	assert.Nil(t, school)
	// A dot-less host never reaches storage
	assert.Empty(t, lookup.domains)
}

func TestResolveSchoolDomain_StorageError(t *testing.T) {
	storageErr := errors.New("connection refused")
	lookup := &countingLookup{err: storageErr}

	school, err := ResolveSchoolDomain("alex@student.kirkwood.edu", lookup.lookup)
	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, school)
	// Storage failures stop the walk instead of being treated as a miss
	assert.Equal(t, []string{"student.kirkwood.edu"}, lookup.domains)
}

func setupSchoolServiceTest(t *testing.T) SchoolService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewSchoolService(repository.NewSchoolRepository(testDB))
}

func TestSchoolService_ResolveSchoolForEmail(t *testing.T) {
	schoolService := setupSchoolServiceTest(t)

	created, err := schoolService.CreateSchool(&model.School{
		Name:   "Kirkwood Community College",
		Domain: "kirkwood.edu",
	})
	require.NoError(t, err)

	school, err := schoolService.ResolveSchoolForEmail("jordan@mail.kirkwood.edu")
	require.NoError(t, err)
	assert.Equal(t, created.ID, school.ID)

	_, err = schoolService.ResolveSchoolForEmail("jordan@unknown.example.org")
	assert.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestSchoolService_CreateSchool_Validation(t *testing.T) {
	schoolService := setupSchoolServiceTest(t)

	_, err := schoolService.CreateSchool(&model.School{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
	assert.Contains(t, validationErr.Fields, "domain")
}

func TestSchoolService_CreateSchool_DefaultStatus(t *testing.T) {
	schoolService := setupSchoolServiceTest(t)

	created, err := schoolService.CreateSchool(&model.School{
		Name:   "Iowa State University",
		Domain: "iastate.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SchoolStatusActive, created.Status)
}

func TestSchoolService_CreateSchool_DuplicateDomain(t *testing.T) {
	schoolService := setupSchoolServiceTest(t)

	_, err := schoolService.CreateSchool(&model.School{
		Name:   "Kirkwood Community College",
		Domain: "kirkwood.edu",
	})
	require.NoError(t, err)

	_, err = schoolService.CreateSchool(&model.School{
		Name:   "Another Kirkwood",
		Domain: "kirkwood.edu",
	})
	assert.Error(t, err)
}

func TestSchoolService_GetSchoolByID_NotFound(t *testing.T) {
	schoolService := setupSchoolServiceTest(t)

	_, err := schoolService.GetSchoolByID(999)
	assert.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestSchoolService_DeleteSchool_HidesFromResolution(t *testing.T) {
	schoolService := setupSchoolServiceTest(t)

	created, err := schoolService.CreateSchool(&model.School{
		Name:   "Kirkwood Community College",
		Domain: "kirkwood.edu",
	})
	require.NoError(t, err)

	require.NoError(t, schoolService.DeleteSchool(created.ID))

	_, err = schoolService.ResolveSchoolForEmail("jordan@kirkwood.edu")
	assert.ErrorIs(t, err, ErrSchoolNotFound)
}
