package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/home-harbor/api-go/controllers"
	"github.com/home-harbor/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	listingController := controllers.NewListingController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// Listing reads are public but role-aware: attached claims widen
	// visibility, their absence narrows it.
	listings := r.Group("/api")
	listings.Use(middleware.OptionalAuthMiddleware())
	{
		SetupListingRoutes(listings, listingController)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", authController.GetProfile)

		protected.POST("/listings", listingController.CreateListing)
		protected.PUT("/listings/:id", listingController.UpdateListing)
		protected.DELETE("/listings/:id", listingController.DeleteListing)

		SetupUploadRoutes(protected, uploadController)
	}
}
