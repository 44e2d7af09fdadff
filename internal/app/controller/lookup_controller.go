package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	apperrors "github.com/patriotthanks/patriotthanks-backend/internal/errors"
	"github.com/patriotthanks/patriotthanks-backend/internal/middleware"
)

// LookupController serves the seeded reference lists used to populate
// filter and form dropdowns.
type LookupController struct {
	lookupService service.LookupService
}

func NewLookupController(lookupService service.LookupService) *LookupController {
	return &LookupController{lookupService: lookupService}
}

func (ctrl *LookupController) ListBusinessTypes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	types, err := ctrl.lookupService.ListBusinessTypes()
	if err != nil {
		log.Error("Failed to list business types", err, nil)
		apperrors.InternalError(c, "Failed to fetch business types")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business_types": types,
	})
}

func (ctrl *LookupController) ListIncentiveTypes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	types, err := ctrl.lookupService.ListIncentiveTypes()
	if err != nil {
		log.Error("Failed to list incentive types", err, nil)
		apperrors.InternalError(c, "Failed to fetch incentive types")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incentive_types": types,
	})
}

func (ctrl *LookupController) ListStates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	states, err := ctrl.lookupService.ListStates()
	if err != nil {
		log.Error("Failed to list states", err, nil)
		apperrors.InternalError(c, "Failed to fetch states")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"states": states,
	})
}
