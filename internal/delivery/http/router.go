package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vanmates/vanmates-backend/internal/delivery/http/handler"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/middleware"
	"github.com/vanmates/vanmates-backend/internal/domain"
)

type Router struct {
	profileHandler  *handler.ProfileHandler
	locationHandler *handler.LocationHandler
	mapHandler      *handler.MapHandler
	authMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	locationHandler *handler.LocationHandler,
	mapHandler *handler.MapHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler:  profileHandler,
		locationHandler: locationHandler,
		mapHandler:      mapHandler,
		authMiddleware:  authMiddleware,
	}
}

// registerValidations adds the skill enumeration check to gin's binding engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("skill", func(fl validator.FieldLevel) bool {
			return domain.Skill(fl.Field().String()).Valid()
		})
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.POST("", r.profileHandler.CreateProfile)
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.DELETE("/me", r.profileHandler.DeleteMyProfile)
				profile.PUT("/me/location", r.locationHandler.UpdateLocation)
				profile.PUT("/me/visibility", r.profileHandler.SetVisibility)
				profile.GET("/:profile_id", r.profileHandler.GetProfileByID)
			}

			// Discovery routes
			protected.GET("/nearby", r.mapHandler.Nearby)
			zones := protected.Group("/zones")
			{
				zones.GET("", r.mapHandler.Zones)
				zones.GET("/profiles", r.mapHandler.ZoneProfiles)
			}
		}
	}

	return router
}
