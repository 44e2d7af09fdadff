package router

import (
	"github.com/gin-gonic/gin"
	"github.com/patriotthanks/patriotthanks-backend/config"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/controller"
	"github.com/patriotthanks/patriotthanks-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	businessController  *controller.BusinessController
	incentiveController *controller.IncentiveController
	schoolController    *controller.SchoolController
	lookupController    *controller.LookupController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	businessController *controller.BusinessController,
	incentiveController *controller.IncentiveController,
	schoolController *controller.SchoolController,
	lookupController *controller.LookupController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		businessController:  businessController,
		incentiveController: incentiveController,
		schoolController:    schoolController,
		lookupController:    lookupController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Patriot Thanks API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		businesses := v1.Group("/businesses")
		{
			businesses.GET("", r.businessController.ListBusinesses)
			businesses.GET("/:id", r.businessController.GetBusinessByID)
			businesses.GET("/:id/incentives", r.incentiveController.ListBusinessIncentives)

			businesses.POST("",
				r.authMiddleware.Authenticate(),
				r.businessController.CreateBusiness,
			)
			businesses.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.businessController.UpdateBusiness,
			)
			businesses.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.businessController.DeleteBusiness,
			)

			businesses.POST("/:id/locations",
				r.authMiddleware.Authenticate(),
				r.businessController.AddLocation,
			)
			businesses.DELETE("/:id/locations/:location_id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.businessController.RemoveLocation,
			)

			businesses.POST("/:id/incentives",
				r.authMiddleware.Authenticate(),
				r.incentiveController.CreateIncentive,
			)
		}

		incentives := v1.Group("/incentives")
		{
			incentives.GET("/:id", r.incentiveController.GetIncentiveByID)
			incentives.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.incentiveController.UpdateIncentive,
			)
			incentives.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.incentiveController.DeleteIncentive,
			)
		}

		schools := v1.Group("/schools")
		{
			schools.GET("", r.schoolController.ListSchools)
			schools.GET("/:id", r.schoolController.GetSchoolByID)
			schools.POST("/resolve", r.schoolController.ResolveSchool)

			schools.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.schoolController.CreateSchool,
			)
			schools.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.schoolController.DeleteSchool,
			)
		}

		types := v1.Group("/types")
		{
			types.GET("/businesses", r.lookupController.ListBusinessTypes)
			types.GET("/incentives", r.lookupController.ListIncentiveTypes)
		}
		v1.GET("/states", r.lookupController.ListStates)

		upload := v1.Group("/upload")
		{
			upload.POST("/presigned-url",
				r.authMiddleware.Authenticate(),
				r.uploadController.GeneratePresignedURL,
			)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
