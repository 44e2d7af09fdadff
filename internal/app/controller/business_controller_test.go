package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBusinessControllerTest(t *testing.T) (*gin.Engine, service.BusinessService, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	businessRepo := repository.NewBusinessRepository(testDB)
	incentiveRepo := repository.NewIncentiveRepository(testDB)
	lookupRepo := repository.NewLookupRepository(testDB)
	businessService := service.NewBusinessService(testDB, businessRepo, incentiveRepo, lookupRepo)
	incentiveService := service.NewIncentiveService(testDB, incentiveRepo, businessRepo, lookupRepo)

	businessCtrl := NewBusinessController(businessService)
	incentiveCtrl := NewIncentiveController(incentiveService)

	router := gin.New()
	router.GET("/businesses", businessCtrl.ListBusinesses)
	router.GET("/businesses/:id", businessCtrl.GetBusinessByID)
	router.GET("/businesses/:id/incentives", incentiveCtrl.ListBusinessIncentives)

	return router, businessService, testDB
}

func seedBusinessWithIncentive(t *testing.T, testDB *gorm.DB) *model.Business {
	businessType := &model.BusinessType{Name: "Restaurant", DisplayOrder: 1}
	require.NoError(t, testDB.Create(businessType).Error)

	business := &model.Business{
		Name:           "Patriot Diner",
		BusinessTypeID: businessType.ID,
		IsActive:       true,
	}
	require.NoError(t, testDB.Create(business).Error)

	percentage := 10.0
	endDate := time.Date(2099, time.December, 30, 0, 0, 0, 0, time.UTC)
	incentive := &model.Incentive{
		Title:              "Military Discount",
		Description:        "10% off",
		DiscountPercentage: &percentage,
		EndDate:            &endDate,
		IsActive:           true,
		BusinessID:         business.ID,
	}
	require.NoError(t, testDB.Create(incentive).Error)

	return business
}

func TestBusinessController_GetBusinessByID_Aggregate(t *testing.T) {
	router, _, testDB := setupBusinessControllerTest(t)

	business := seedBusinessWithIncentive(t, testDB)
	disabled := &model.Incentive{
		Title:       "Retired Promo",
		Description: "no longer offered",
		IsActive:    false,
		BusinessID:  business.ID,
	}
	require.NoError(t, testDB.Create(disabled).Error)

	req := httptest.NewRequest("GET", "/businesses/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	businessOut := response["business"].(map[string]interface{})
	assert.Equal(t, float64(business.ID), businessOut["id"])
	assert.Equal(t, "Patriot Diner", businessOut["name"])
	// Incentives appear only as the top-level summaries, never as a raw
	// list nested inside the business
	assert.NotContains(t, businessOut, "incentives")

	incentives := response["incentives"].([]interface{})
	require.Len(t, incentives, 1)
	first := incentives[0].(map[string]interface{})
	assert.Equal(t, "10%", first["formatted_discount"])
	assert.Equal(t, true, first["currently_valid"])
	assert.Equal(t, "Valid until Dec 30, 2099", first["validity_display"])
}

func TestBusinessController_GetBusinessByID_NotFound(t *testing.T) {
	router, _, _ := setupBusinessControllerTest(t)

	req := httptest.NewRequest("GET", "/businesses/999", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "BUSINESS_NOT_FOUND")
}

func TestBusinessController_GetBusinessByID_DeletedReads404(t *testing.T) {
	router, businessService, testDB := setupBusinessControllerTest(t)

	business := seedBusinessWithIncentive(t, testDB)
	require.NoError(t, businessService.DeleteBusiness(business.ID))

	req := httptest.NewRequest("GET", "/businesses/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBusinessController_GetBusinessByID_InvalidID(t *testing.T) {
	router, _, _ := setupBusinessControllerTest(t)

	req := httptest.NewRequest("GET", "/businesses/not-a-number", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBusinessController_ListBusinessIncentives(t *testing.T) {
	router, _, testDB := setupBusinessControllerTest(t)

	business := seedBusinessWithIncentive(t, testDB)

	// A disabled incentive never reaches the public list
	require.NoError(t, testDB.Create(&model.Incentive{
		Title:       "Disabled Offer",
		Description: "Flag off",
		IsActive:    false,
		BusinessID:  business.ID,
	}).Error)

	req := httptest.NewRequest("GET", "/businesses/1/incentives", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestBusinessController_ListBusinesses(t *testing.T) {
	router, _, testDB := setupBusinessControllerTest(t)

	seedBusinessWithIncentive(t, testDB)

	req := httptest.NewRequest("GET", "/businesses?page=1&page_size=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["total_count"])
}
