package repository

import (
	"testing"

	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBusinessRepoTest(t *testing.T) (BusinessRepository, *gorm.DB, *model.BusinessType) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	businessType := &model.BusinessType{Name: "Restaurant", DisplayOrder: 1}
	require.NoError(t, testDB.Create(businessType).Error)

	return NewBusinessRepository(testDB), testDB, businessType
}

func TestBusinessRepository_Delete_SoftDeletes(t *testing.T) {
	repo, testDB, businessType := setupBusinessRepoTest(t)

	business := &model.Business{
		Name:           "Patriot Diner",
		BusinessTypeID: businessType.ID,
		IsActive:       true,
	}
	require.NoError(t, repo.Create(business))

	require.NoError(t, repo.Delete(business.ID))

	// Default reads no longer see the row
	_, err := repo.FindByID(business.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The row is retained with its deletion timestamp
	var retained model.Business
	require.NoError(t, testDB.Unscoped().First(&retained, business.ID).Error)
	assert.True(t, retained.DeletedAt.Valid)
}

func TestBusinessRepository_Delete_AlreadyDeleted(t *testing.T) {
	repo, _, businessType := setupBusinessRepoTest(t)

	business := &model.Business{
		Name:           "Patriot Diner",
		BusinessTypeID: businessType.ID,
	}
	require.NoError(t, repo.Create(business))
	require.NoError(t, repo.Delete(business.ID))

	// Deleting again matches no live rows and reports no error
	assert.NoError(t, repo.Delete(business.ID))
}

func TestBusinessRepository_FindAll_ExcludesDeleted(t *testing.T) {
	repo, _, businessType := setupBusinessRepoTest(t)

	keep := &model.Business{Name: "Keep Me", BusinessTypeID: businessType.ID}
	drop := &model.Business{Name: "Drop Me", BusinessTypeID: businessType.ID}
	require.NoError(t, repo.Create(keep))
	require.NoError(t, repo.Create(drop))
	require.NoError(t, repo.Delete(drop.ID))

	result, err := repo.FindAll(BusinessFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Businesses, 1)
	assert.Equal(t, "Keep Me", result.Businesses[0].Name)
}

func TestBusinessRepository_FindAll_SearchFilter(t *testing.T) {
	repo, _, businessType := setupBusinessRepoTest(t)

	for _, name := range []string{"Patriot Diner", "Liberty Auto", "Patriot Gym"} {
		require.NoError(t, repo.Create(&model.Business{
			Name:           name,
			BusinessTypeID: businessType.ID,
		}))
	}

	result, err := repo.FindAll(BusinessFilter{Search: "Patriot"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestBusinessRepository_FindByIDWithDetails(t *testing.T) {
	repo, testDB, businessType := setupBusinessRepoTest(t)

	business := &model.Business{
		Name:           "Patriot Diner",
		BusinessTypeID: businessType.ID,
	}
	require.NoError(t, repo.Create(business))

	secondary := &model.BusinessLocation{
		BusinessID: business.ID,
		IsPrimary:  false,
		Address: model.Address{
			StreetAddress: "200 Side St",
			City:          "Cedar Rapids",
			StateCode:     "IA",
			ZipCode:       "52402",
		},
	}
	primary := &model.BusinessLocation{
		BusinessID: business.ID,
		IsPrimary:  true,
		Address: model.Address{
			StreetAddress: "100 Main St",
			City:          "Cedar Rapids",
			StateCode:     "IA",
			ZipCode:       "52401",
		},
	}
	require.NoError(t, testDB.Create(secondary).Error)
	require.NoError(t, testDB.Create(primary).Error)

	found, err := repo.FindByIDWithDetails(business.ID)
	require.NoError(t, err)
	assert.Equal(t, "Restaurant", found.BusinessType.Name)
	require.Len(t, found.Locations, 2)
	// Primary location sorts first
	assert.True(t, found.Locations[0].IsPrimary)
	assert.Equal(t, "100 Main St", found.Locations[0].Address.StreetAddress)
}
