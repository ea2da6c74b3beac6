package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/home-harbor/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/listing-images", uploadController.GetListingImageURLs)
		uploads.DELETE("/listing-images", uploadController.DeleteImage)
	}
}
