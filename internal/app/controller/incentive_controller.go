package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	apperrors "github.com/patriotthanks/patriotthanks-backend/internal/errors"
	"github.com/patriotthanks/patriotthanks-backend/internal/middleware"
)

// incentiveDateFormat is the wire format for start/end dates.
const incentiveDateFormat = "2006-01-02"

type IncentiveController struct {
	incentiveService service.IncentiveService
}

func NewIncentiveController(incentiveService service.IncentiveService) *IncentiveController {
	return &IncentiveController{incentiveService: incentiveService}
}

type IncentiveRequest struct {
	Title                string   `json:"title" binding:"required"`
	Description          string   `json:"description" binding:"required"`
	Terms                string   `json:"terms"`
	DiscountAmount       *float64 `json:"discount_amount"`
	DiscountPercentage   *float64 `json:"discount_percentage"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	VerificationRequired string   `json:"verification_required"`
	IsActive             *bool    `json:"is_active"`
	TypeIDs              []uint   `json:"type_ids"`
}

// ListBusinessIncentives returns display projections of a business's
// active incentives.
func (ctrl *IncentiveController) ListBusinessIncentives(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summaries, err := ctrl.incentiveService.GetActiveIncentivesForBusiness(businessID)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
			return
		}
		log.Error("Failed to list incentives", err, map[string]interface{}{
			"business_id": businessID,
		})
		apperrors.InternalError(c, "Failed to fetch incentives")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incentives": summaries,
		"count":      len(summaries),
	})
}

func (ctrl *IncentiveController) GetIncentiveByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	incentive, err := ctrl.incentiveService.GetIncentiveByID(id)
	if err != nil {
		if errors.Is(err, service.ErrIncentiveNotFound) {
			apperrors.NotFound(c, apperrors.IncentiveNotFound, "Incentive not found")
			return
		}
		log.Error("Failed to fetch incentive", err, map[string]interface{}{
			"incentive_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch incentive")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incentive": incentive,
	})
}

func (ctrl *IncentiveController) CreateIncentive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req IncentiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid incentive payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	incentive, ok := ctrl.buildIncentive(c, &req)
	if !ok {
		return
	}
	incentive.BusinessID = businessID

	created, err := ctrl.incentiveService.CreateIncentive(incentive, req.TypeIDs)
	if err != nil {
		respondIncentiveServiceError(c, err)
		return
	}

	log.Info("Incentive created", map[string]interface{}{
		"incentive_id": created.ID,
		"business_id":  businessID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"incentive": created,
	})
}

func (ctrl *IncentiveController) UpdateIncentive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req IncentiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	incentive, ok := ctrl.buildIncentive(c, &req)
	if !ok {
		return
	}
	incentive.ID = id

	updated, err := ctrl.incentiveService.UpdateIncentive(incentive, req.TypeIDs)
	if err != nil {
		respondIncentiveServiceError(c, err)
		return
	}

	log.Info("Incentive updated", map[string]interface{}{
		"incentive_id": updated.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"incentive": updated,
	})
}

// DeleteIncentive soft deletes a single incentive without touching its
// business.
func (ctrl *IncentiveController) DeleteIncentive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.incentiveService.DeleteIncentive(id); err != nil {
		if errors.Is(err, service.ErrIncentiveNotFound) {
			apperrors.NotFound(c, apperrors.IncentiveNotFound, "Incentive not found")
			return
		}
		log.Error("Failed to delete incentive", err, map[string]interface{}{
			"incentive_id": id,
		})
		apperrors.InternalError(c, "Failed to delete incentive")
		return
	}

	log.Info("Incentive deleted", map[string]interface{}{
		"incentive_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Incentive deleted",
	})
}

func (ctrl *IncentiveController) buildIncentive(c *gin.Context, req *IncentiveRequest) (*model.Incentive, bool) {
	incentive := &model.Incentive{
		Title:                req.Title,
		Description:          req.Description,
		Terms:                req.Terms,
		DiscountAmount:       req.DiscountAmount,
		DiscountPercentage:   req.DiscountPercentage,
		VerificationRequired: req.VerificationRequired,
		IsActive:             true,
	}
	if req.IsActive != nil {
		incentive.IsActive = *req.IsActive
	}

	if req.StartDate != "" {
		start, err := time.Parse(incentiveDateFormat, req.StartDate)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "start_date must be YYYY-MM-DD")
			return nil, false
		}
		incentive.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(incentiveDateFormat, req.EndDate)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "end_date must be YYYY-MM-DD")
			return nil, false
		}
		incentive.EndDate = &end
	}

	return incentive, true
}

func respondIncentiveServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apperrors.RespondWithValidationError(c, validationErr.Fields)
	case errors.Is(err, service.ErrBusinessNotFound):
		apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
	case errors.Is(err, service.ErrIncentiveNotFound):
		apperrors.NotFound(c, apperrors.IncentiveNotFound, "Incentive not found")
	case errors.Is(err, service.ErrIncentiveTypeNotFound):
		apperrors.BadRequest(c, apperrors.IncentiveTypeNotFound, "Unknown incentive type")
	default:
		apperrors.RespondWithParsedError(c, err, "incentive")
	}
}
