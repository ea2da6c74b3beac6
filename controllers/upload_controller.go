package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/home-harbor/api-go/config"
	"github.com/home-harbor/api-go/utils"
	"gorm.io/gorm"
)

const maxImagesPerListing = 6

type UploadController struct {
	DB            *gorm.DB
	StorageClient *s3.Client
	StorageConfig *config.StorageConfig
}

type ImageUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type MultipleImageUploadRequest struct {
	Files []ImageUploadRequest `json:"files" binding:"required,dive"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	storageConfig := config.GetStorageConfig()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(storageConfig.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			storageConfig.AccessKeyID,
			storageConfig.SecretAccessKey,
			"",
		),
		Region: storageConfig.Region,
	})

	return &UploadController{
		DB:            db,
		StorageClient: client,
		StorageConfig: storageConfig,
	}
}

// GetListingImageURLs godoc
// @Summary Get presigned upload URLs for listing images
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} controllers.StandardResponse
// @Router /uploads/listing-images [post]
func (uc *UploadController) GetListingImageURLs(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req MultipleImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Files) > maxImagesPerListing {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Maximum %d images allowed per listing", maxImagesPerListing),
		})
		return
	}

	var responses []ImageUploadResponse
	for _, fileReq := range req.Files {
		if !isValidImageType(fileReq.ContentType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid file type for %s", fileReq.FileName),
			})
			return
		}

		if !isValidImageSize(fileReq.FileSize) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File size exceeds limit for %s", fileReq.FileName),
			})
			return
		}

		key := uc.generateImageKey(user.UserID, fileReq.FileName)

		presignedURL, err := uc.createPresignedURL(c.Request.Context(), key, fileReq.ContentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload URL for %s", fileReq.FileName),
			})
			return
		}

		responses = append(responses, ImageUploadResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		})
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"files": responses},
		Message: "Presigned URLs generated successfully",
	})
}

// DeleteImage godoc
// @Summary Delete an uploaded listing image
// @Tags uploads
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} controllers.StandardResponse
// @Router /uploads/listing-images [delete]
func (uc *UploadController) DeleteImage(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	// Keys embed the uploader's ID; only the uploader or an admin may
	// delete.
	if !ownsKey(key, user.UserID) && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own uploads"})
		return
	}

	_, err := uc.StorageClient.DeleteObject(c.Request.Context(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.StorageConfig.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Image deleted"})
}

// Helper functions
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}
	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func isValidImageSize(fileSize int64) bool {
	return fileSize <= 10*1024*1024 // 10MB
}

func (uc *UploadController) generateImageKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	id := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("listings/%d/%d_%s%s", userID, timestamp, id, ext)
}

func ownsKey(key string, userID uint) bool {
	return strings.HasPrefix(key, fmt.Sprintf("listings/%d/", userID))
}

func (uc *UploadController) createPresignedURL(ctx context.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.StorageConfig.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.StorageClient)
	req, err := presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour // 1 hour expiry
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
