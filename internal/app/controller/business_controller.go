package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	apperrors "github.com/patriotthanks/patriotthanks-backend/internal/errors"
	"github.com/patriotthanks/patriotthanks-backend/internal/middleware"
)

type BusinessController struct {
	businessService service.BusinessService
}

func NewBusinessController(businessService service.BusinessService) *BusinessController {
	return &BusinessController{businessService: businessService}
}

type BusinessRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	Website        string `json:"website"`
	BusinessTypeID uint   `json:"business_type_id" binding:"required"`
	PhotoURL       string `json:"photo_url"`
}

type BusinessUpdateRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Website        string `json:"website"`
	BusinessTypeID uint   `json:"business_type_id"`
	PhotoURL       string `json:"photo_url"`
	IsVerified     bool   `json:"is_verified"`
	IsActive       bool   `json:"is_active"`
}

type LocationRequest struct {
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	HoursOfOperation string   `json:"hours_of_operation"`
	IsPrimary        bool     `json:"is_primary"`
	StreetAddress    string   `json:"street_address" binding:"required"`
	City             string   `json:"city" binding:"required"`
	StateCode        string   `json:"state_code" binding:"required"`
	ZipCode          string   `json:"zip_code" binding:"required"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

func (ctrl *BusinessController) ListBusinesses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	businessTypeID, _ := strconv.ParseUint(c.Query("business_type_id"), 10, 32)

	filter := repository.BusinessFilter{
		BusinessTypeID: uint(businessTypeID),
		Search:         c.Query("search"),
		Page:           page,
		PageSize:       pageSize,
	}

	result, err := ctrl.businessService.ListBusinesses(filter)
	if err != nil {
		log.Error("Failed to list businesses", err, nil)
		apperrors.InternalError(c, "Failed to fetch businesses")
		return
	}

	log.Info("Businesses listed", map[string]interface{}{
		"count": len(result.Businesses),
		"total": result.TotalCount,
	})

	c.JSON(http.StatusOK, gin.H{
		"businesses":  result.Businesses,
		"total_count": result.TotalCount,
		"page":        result.Page,
		"page_size":   result.PageSize,
	})
}

// GetBusinessByID returns the business aggregate: profile, locations
// with addresses, and display projections of its active incentives.
func (ctrl *BusinessController) GetBusinessByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.businessService.GetBusinessWithIncentives(id)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			log.Warn("Business not found", map[string]interface{}{
				"business_id": id,
			})
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
			return
		}
		log.Error("Failed to fetch business", err, map[string]interface{}{
			"business_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch business")
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (ctrl *BusinessController) CreateBusiness(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid business payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	business := &model.Business{
		Name:           req.Name,
		Description:    req.Description,
		Website:        req.Website,
		BusinessTypeID: req.BusinessTypeID,
		PhotoURL:       req.PhotoURL,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		business.SubmittedByUserID = &userID
	}

	created, err := ctrl.businessService.CreateBusiness(business)
	if err != nil {
		respondBusinessServiceError(c, err)
		return
	}

	log.Info("Business created", map[string]interface{}{
		"business_id": created.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"business": created,
	})
}

func (ctrl *BusinessController) UpdateBusiness(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BusinessUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	business := &model.Business{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Website:        req.Website,
		BusinessTypeID: req.BusinessTypeID,
		PhotoURL:       req.PhotoURL,
		IsVerified:     req.IsVerified,
		IsActive:       req.IsActive,
	}

	updated, err := ctrl.businessService.UpdateBusiness(business)
	if err != nil {
		respondBusinessServiceError(c, err)
		return
	}

	log.Info("Business updated", map[string]interface{}{
		"business_id": updated.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"business": updated,
	})
}

func (ctrl *BusinessController) DeleteBusiness(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.businessService.DeleteBusiness(id); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
			return
		}
		log.Error("Failed to delete business", err, map[string]interface{}{
			"business_id": id,
		})
		apperrors.InternalError(c, "Failed to delete business")
		return
	}

	log.Info("Business deleted", map[string]interface{}{
		"business_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Business deleted",
	})
}

func (ctrl *BusinessController) AddLocation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	location := &model.BusinessLocation{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		HoursOfOperation: req.HoursOfOperation,
		IsPrimary:        req.IsPrimary,
		Address: model.Address{
			StreetAddress: req.StreetAddress,
			City:          req.City,
			StateCode:     req.StateCode,
			ZipCode:       req.ZipCode,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
		},
	}

	created, err := ctrl.businessService.AddLocation(id, location)
	if err != nil {
		respondBusinessServiceError(c, err)
		return
	}

	log.Info("Business location created", map[string]interface{}{
		"business_id": id,
		"location_id": created.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"location": created,
	})
}

func (ctrl *BusinessController) RemoveLocation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	locationID, ok := parseIDParam(c, "location_id")
	if !ok {
		return
	}

	if err := ctrl.businessService.RemoveLocation(businessID, locationID); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
			return
		}
		if errors.Is(err, service.ErrLocationNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Location not found")
			return
		}
		log.Error("Failed to delete location", err, map[string]interface{}{
			"business_id": businessID,
			"location_id": locationID,
		})
		apperrors.InternalError(c, "Failed to delete location")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location deleted",
	})
}

func respondBusinessServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apperrors.RespondWithValidationError(c, validationErr.Fields)
	case errors.Is(err, service.ErrBusinessNotFound):
		apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
	case errors.Is(err, service.ErrBusinessTypeNotFound):
		apperrors.BadRequest(c, apperrors.BusinessTypeNotFound, "Unknown business type")
	default:
		apperrors.RespondWithParsedError(c, err, "business")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
