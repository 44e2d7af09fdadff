package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSchoolControllerTest(t *testing.T) (*gin.Engine, service.SchoolService, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	schoolService := service.NewSchoolService(repository.NewSchoolRepository(testDB))
	ctrl := NewSchoolController(schoolService)

	router := gin.New()
	router.GET("/schools", ctrl.ListSchools)
	router.GET("/schools/:id", ctrl.GetSchoolByID)
	router.POST("/schools", ctrl.CreateSchool)
	router.POST("/schools/resolve", ctrl.ResolveSchool)

	return router, schoolService, testDB
}

func TestSchoolController_ResolveSchool_Match(t *testing.T) {
	router, schoolService, _ := setupSchoolControllerTest(t)

	created, err := schoolService.CreateSchool(&model.School{
		Name:   "Kirkwood Community College",
		Domain: "kirkwood.edu",
	})
	require.NoError(t, err)

	body, _ := json.Marshal(ResolveSchoolRequest{Email: "jordan@student.kirkwood.edu"})
	req := httptest.NewRequest("POST", "/schools/resolve", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	school := response["school"].(map[string]interface{})
	assert.Equal(t, float64(created.ID), school["id"])
	assert.Equal(t, "kirkwood.edu", school["domain"])
}

func TestSchoolController_ResolveSchool_NoMatch(t *testing.T) {
	router, _, _ := setupSchoolControllerTest(t)

	body, _ := json.Marshal(ResolveSchoolRequest{Email: "jordan@gmail.com"})
	req := httptest.NewRequest("POST", "/schools/resolve", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// A miss is a successful lookup with a null school
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response["school"])
}

func TestSchoolController_ResolveSchool_InvalidEmail(t *testing.T) {
	router, _, _ := setupSchoolControllerTest(t)

	body, _ := json.Marshal(ResolveSchoolRequest{Email: "not-an-email"})
	req := httptest.NewRequest("POST", "/schools/resolve", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchoolController_CreateSchool_DuplicateDomain(t *testing.T) {
	router, schoolService, _ := setupSchoolControllerTest(t)

	_, err := schoolService.CreateSchool(&model.School{
		Name:   "Kirkwood Community College",
		Domain: "kirkwood.edu",
	})
	require.NoError(t, err)

	body, _ := json.Marshal(SchoolRequest{Name: "Another Kirkwood", Domain: "kirkwood.edu"})
	req := httptest.NewRequest("POST", "/schools", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSchoolController_GetSchoolByID_NotFound(t *testing.T) {
	router, _, _ := setupSchoolControllerTest(t)

	req := httptest.NewRequest("GET", "/schools/999", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SCHOOL_NOT_FOUND")
}
