package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-food-lens/internal/config"
	apperrors "go-food-lens/internal/errors"
	"go-food-lens/internal/logger"
	"go-food-lens/pkg/models"
)

// ScanService is the ingestion pipeline as seen by the HTTP layer.
type ScanService interface {
	ScanImage(ctx context.Context, upload io.Reader, filename string) (*models.ScannedItem, error)
	ListScannedItems(ctx context.Context) ([]models.ScannedItem, error)
}

// DietService handles diet log writes and reads.
type DietService interface {
	AddToDiet(ctx context.Context, req models.AddToDietRequest) (*models.DietLogEntry, error)
	ListDietLogs(ctx context.Context) ([]models.DietLogEntry, error)
}

// ChatService answers free-form user messages.
type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

func NewHandler(scans ScanService, diet DietService, chat ChatService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		cors.Default(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
	)

	r.GET("/health", healthCheck)

	api := r.Group("/api")
	api.POST("/upload-image", uploadImage(scans, cfg))
	api.POST("/add-to-diet", addToDiet(diet))
	api.GET("/get-scanned-items", getScannedItems(scans))
	api.GET("/calendar/diet-logs", getDietLogs(diet))
	api.POST("/chatbot", chatbot(chat))

	return r
}

func uploadImage(scans ScanService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.AnalysisTimeout)
		defer cancel()

		fileHeader, err := c.FormFile("image")
		if err != nil {
			// No artifact exists yet; nothing to clean up.
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
			return
		}

		upload, err := fileHeader.Open()
		if err != nil {
			respondError(c, "failed to read upload", apperrors.NewInternalError("failed to read upload", err))
			return
		}
		defer upload.Close()

		item, err := scans.ScanImage(ctx, upload, fileHeader.Filename)
		if err != nil {
			respondError(c, "image scan failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"food_names":         item.FoodNames,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
			"ip":                 c.ClientIP(),
		}).Info("Image scan completed")

		c.JSON(http.StatusOK, item)
	}
}

func addToDiet(diet DietService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddToDietRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
			return
		}

		if _, err := diet.AddToDiet(c.Request.Context(), req); err != nil {
			respondError(c, "failed to add diet log", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Meal added to diet logs successfully"})
	}
}

func getScannedItems(scans ScanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := scans.ListScannedItems(c.Request.Context())
		if err != nil {
			logger.WithError(err).Error("Failed to list scanned items")
			c.JSON(apperrors.GetStatusCode(err), gin.H{"success": false, "error": apperrors.Message(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "scanned_items": items})
	}
}

func getDietLogs(diet DietService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := diet.ListDietLogs(c.Request.Context())
		if err != nil {
			logger.WithError(err).Error("Failed to list diet logs")
			c.JSON(apperrors.GetStatusCode(err), gin.H{"success": false, "error": apperrors.Message(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "diet_logs": entries})
	}
}

func chatbot(chat ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		reply, err := chat.Reply(c.Request.Context(), req.Message)
		if err != nil {
			respondError(c, "chatbot call failed", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"response": reply})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "available",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, message string, err error) {
	code := apperrors.GetStatusCode(err)

	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, gin.H{"error": apperrors.Message(err)})
}
