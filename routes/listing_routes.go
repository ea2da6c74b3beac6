package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/home-harbor/api-go/controllers"
)

func SetupListingRoutes(group *gin.RouterGroup, listingController *controllers.ListingController) {
	listings := group.Group("/listings")
	{
		listings.GET("/search", listingController.SearchListings)
		listings.GET("/:id", listingController.GetListing)
		listings.GET("/:id/nearby", listingController.GetNearbyListings)
		listings.POST("/:id/resolve-marker", listingController.ResolveMarker)
	}
}
