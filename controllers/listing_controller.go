package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/home-harbor/api-go/geo"
	"github.com/home-harbor/api-go/models"
	"github.com/home-harbor/api-go/search"
	"github.com/home-harbor/api-go/utils"
	"gorm.io/gorm"
)

type ListingController struct {
	DB    *gorm.DB
	Store *search.ListingStore
}

func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{DB: db, Store: search.NewListingStore(db)}
}

type ResolveMarkerRequest struct {
	Zoom        int      `json:"zoom" binding:"required,min=1,max=20"`
	PixelRadius *float64 `json:"pixelRadius"`
}

type ListingInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address" binding:"required"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	RegularPrice  int      `json:"regularPrice" binding:"required,min=0"`
	DiscountPrice *int     `json:"discountPrice"`
	Offer         bool     `json:"offer"`
	Type          string   `json:"type" binding:"required,oneof=sale rent"`
	Furnished     bool     `json:"furnished"`
	Parking       bool     `json:"parking"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	ImageURLs     []string `json:"imageUrls"`
}

// callerFromContext maps the optional authenticated user onto the
// query builder's caller. Missing or unparseable auth yields the
// anonymous caller, which gets approved-only visibility.
func callerFromContext(c *gin.Context) search.Caller {
	user := utils.GetUser(c)
	if user == nil {
		return search.Caller{}
	}
	return search.Caller{UserID: user.UserID, Role: models.Role(user.Role)}
}

// SearchListings godoc
// @Summary Search listings with filters, price range, radius and pagination
// @Tags listings
// @Accept json
// @Produce json
// @Param searchTerm query string false "Substring match on listing name"
// @Param type query string false "sale, rent, or all"
// @Param offer query string false "true restricts to offers; false or unset matches both"
// @Param furnished query string false "true restricts to furnished; false or unset matches both"
// @Param parking query string false "true restricts to parking; false or unset matches both"
// @Param minPrice query integer false "Minimum price"
// @Param maxPrice query integer false "Maximum price"
// @Param sort query string false "Sort key (default createdAt)"
// @Param order query string false "asc or desc (default desc)"
// @Param limit query integer false "Page size (default 9)"
// @Param startIndex query integer false "Offset into the result set"
// @Param lat query number false "Radius search center latitude"
// @Param lng query number false "Radius search center longitude"
// @Param radiusKm query number false "Radius in kilometers"
// @Param showAll query boolean false "Owners see their own listings, admins see every status"
// @Success 200 {array} models.Listing
// @Router /listings/search [get]
func (lc *ListingController) SearchListings(c *gin.Context) {
	params := search.Params{
		SearchTerm: c.Query("searchTerm"),
		Type:       c.Query("type"),
		Offer:      c.Query("offer"),
		Furnished:  c.Query("furnished"),
		Parking:    c.Query("parking"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
		Sort:       c.Query("sort"),
		Order:      c.Query("order"),
		Limit:      c.Query("limit"),
		StartIndex: c.Query("startIndex"),
		Lat:        c.Query("lat"),
		Lng:        c.Query("lng"),
		RadiusKm:   c.Query("radiusKm"),
		ShowAll:    c.Query("showAll"),
	}

	query := search.Build(params, callerFromContext(c))

	listings, err := lc.Store.Execute(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching listings"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetNearbyListings godoc
// @Summary Get the listings closest to this one
// @Tags listings
// @Produce json
// @Param id path integer true "Listing ID"
// @Param limit query integer false "Number of neighbors to return (default 6)"
// @Success 200 {array} models.Listing
// @Router /listings/{id}/nearby [get]
func (lc *ListingController) GetNearbyListings(c *gin.Context) {
	var reference models.Listing
	if err := lc.DB.First(&reference, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	limit := parseInt(c.Query("limit"))
	if limit <= 0 {
		limit = 6
	}

	var candidates []models.Listing
	if err := lc.DB.Where("status = ?", models.StatusApproved).Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching listings"})
		return
	}

	c.JSON(http.StatusOK, geo.RankNearest(reference, candidates, limit))
}

// ResolveMarker godoc
// @Summary Resolve a marker click into a single listing or a nearby-listings group
// @Description Markers within the pixel radius of the clicked one at the given zoom are grouped
// @Tags listings
// @Accept json
// @Produce json
// @Param id path integer true "Clicked listing ID"
// @Success 200 {object} geo.ClusterResult
// @Router /listings/{id}/resolve-marker [post]
func (lc *ListingController) ResolveMarker(c *gin.Context) {
	var clicked models.Listing
	if err := lc.DB.First(&clicked, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	var req ResolveMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pixelRadius := geo.DefaultPixelRadius
	if req.PixelRadius != nil && *req.PixelRadius > 0 {
		pixelRadius = *req.PixelRadius
	}

	var visible []models.Listing
	if err := lc.DB.Where("status = ?", models.StatusApproved).Find(&visible).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching listings"})
		return
	}

	projector := geo.WebMercator{Zoom: req.Zoom}
	result := geo.ResolveClick(clicked, geo.FilterMappable(visible), projector, req.Zoom, pixelRadius)

	c.JSON(http.StatusOK, result)
}

// GetListing godoc
// @Summary Get a single listing
// @Tags listings
// @Produce json
// @Param id path integer true "Listing ID"
// @Success 200 {object} models.Listing
// @Router /listings/{id} [get]
func (lc *ListingController) GetListing(c *gin.Context) {
	var listing models.Listing
	if err := lc.DB.First(&listing, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	// Unapproved listings are only visible to their owner and admins.
	if listing.Status != models.StatusApproved {
		caller := callerFromContext(c)
		if caller.Role != models.RoleAdmin && caller.UserID != listing.OwnerID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
	}

	c.JSON(http.StatusOK, listing)
}

// CreateListing godoc
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Success 201 {object} models.Listing
// @Router /listings [post]
func (lc *ListingController) CreateListing(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Offer && input.DiscountPrice != nil && *input.DiscountPrice > input.RegularPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount price must not exceed regular price"})
		return
	}

	listing := models.Listing{
		Name:          input.Name,
		Description:   input.Description,
		Address:       input.Address,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		RegularPrice:  input.RegularPrice,
		DiscountPrice: input.DiscountPrice,
		Offer:         input.Offer,
		Type:          models.ListingType(input.Type),
		Furnished:     input.Furnished,
		Parking:       input.Parking,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		ImageURLs:     input.ImageURLs,
		Status:        models.StatusPending,
		OwnerID:       user.UserID,
	}

	if err := lc.DB.Create(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating listing"})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// UpdateListing godoc
// @Summary Update a listing (owner or admin only)
// @Tags listings
// @Accept json
// @Produce json
// @Param id path integer true "Listing ID"
// @Success 200 {object} models.Listing
// @Router /listings/{id} [put]
func (lc *ListingController) UpdateListing(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var listing models.Listing
	if err := lc.DB.First(&listing, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	if listing.OwnerID != user.UserID && models.Role(user.Role) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own listings"})
		return
	}

	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Offer && input.DiscountPrice != nil && *input.DiscountPrice > input.RegularPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount price must not exceed regular price"})
		return
	}

	listing.Name = input.Name
	listing.Description = input.Description
	listing.Address = input.Address
	listing.Latitude = input.Latitude
	listing.Longitude = input.Longitude
	listing.RegularPrice = input.RegularPrice
	listing.DiscountPrice = input.DiscountPrice
	listing.Offer = input.Offer
	listing.Type = models.ListingType(input.Type)
	listing.Furnished = input.Furnished
	listing.Parking = input.Parking
	listing.Bedrooms = input.Bedrooms
	listing.Bathrooms = input.Bathrooms
	listing.ImageURLs = input.ImageURLs

	if err := lc.DB.Save(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating listing"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DeleteListing godoc
// @Summary Delete a listing (owner or admin only)
// @Tags listings
// @Produce json
// @Param id path integer true "Listing ID"
// @Success 200 {object} controllers.StandardResponse
// @Router /listings/{id} [delete]
func (lc *ListingController) DeleteListing(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var listing models.Listing
	if err := lc.DB.First(&listing, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	if listing.OwnerID != user.UserID && models.Role(user.Role) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own listings"})
		return
	}

	if err := lc.DB.Delete(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting listing"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Listing deleted"})
}
