package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	apperrors "github.com/patriotthanks/patriotthanks-backend/internal/errors"
	"github.com/patriotthanks/patriotthanks-backend/internal/middleware"
)

type SchoolController struct {
	schoolService service.SchoolService
}

func NewSchoolController(schoolService service.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

type SchoolRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain" binding:"required"`
	Status string `json:"status"`
}

type ResolveSchoolRequest struct {
	Email string `json:"email" binding:"required"`
}

func (ctrl *SchoolController) ListSchools(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	schools, err := ctrl.schoolService.ListSchools()
	if err != nil {
		log.Error("Failed to list schools", err, nil)
		apperrors.InternalError(c, "Failed to fetch schools")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schools": schools,
		"count":   len(schools),
	})
}

func (ctrl *SchoolController) GetSchoolByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	school, err := ctrl.schoolService.GetSchoolByID(id)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			apperrors.NotFound(c, apperrors.SchoolNotFound, "School not found")
			return
		}
		log.Error("Failed to fetch school", err, map[string]interface{}{
			"school_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch school")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"school": school,
	})
}

func (ctrl *SchoolController) CreateSchool(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	school := &model.School{
		Name:   req.Name,
		Domain: req.Domain,
		Status: model.SchoolStatus(req.Status),
	}
	if req.Status == "" {
		school.Status = model.SchoolStatusActive
	}

	created, err := ctrl.schoolService.CreateSchool(school)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			apperrors.RespondWithValidationError(c, validationErr.Fields)
			return
		}
		// Duplicate domain surfaces here as a storage constraint error
		apperrors.RespondWithParsedError(c, err, "school")
		return
	}

	log.Info("School created", map[string]interface{}{
		"school_id": created.ID,
		"domain":    created.Domain,
	})

	c.JSON(http.StatusCreated, gin.H{
		"school": created,
	})
}

func (ctrl *SchoolController) DeleteSchool(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.schoolService.DeleteSchool(id); err != nil {
		log.Error("Failed to delete school", err, map[string]interface{}{
			"school_id": id,
		})
		apperrors.InternalError(c, "Failed to delete school")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "School deleted",
	})
}

// ResolveSchool matches an email address to an affiliated school by its
// domain. A miss is a successful lookup with no school.
func (ctrl *SchoolController) ResolveSchool(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResolveSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request body")
		return
	}

	school, err := ctrl.schoolService.ResolveSchoolForEmail(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email address must contain '@'")
			return
		}
		if errors.Is(err, service.ErrSchoolNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"school": nil,
			})
			return
		}
		log.Error("Failed to resolve school for email", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Failed to resolve school")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"school": school,
	})
}
