// Package handler provides the gin HTTP handlers for the catalogue API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vplaza/catalogue-service-go/internal/db"
	"github.com/vplaza/catalogue-service-go/internal/db/models"
	"github.com/vplaza/catalogue-service-go/internal/db/repository"
	"github.com/vplaza/catalogue-service-go/internal/listing"
	"github.com/vplaza/catalogue-service-go/internal/service"
	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

// VideoHandler serves the article catalogue endpoints.
type VideoHandler struct {
	repo      repository.VideoRepository
	publisher service.EventPublisher
}

// NewVideoHandler creates a VideoHandler. A nil publisher disables event
// emission.
func NewVideoHandler(repo repository.VideoRepository, publisher service.EventPublisher) *VideoHandler {
	if publisher == nil {
		publisher = service.NoopPublisher{}
	}
	return &VideoHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateVideoRequest is the payload for creating an article.
type CreateVideoRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Category     string `json:"category"`
	Author       string `json:"author"`
	PublishedAt  string `json:"publishedAt"`
	IsFeatured   bool   `json:"isFeatured"`
	Duration     string `json:"duration"`
	Views        int    `json:"views"`
	Location     string `json:"location"`
	BodyType     string `json:"bodytype"`
	Scenario     string `json:"scenario"`
	Ethnicity    string `json:"ethnicity"`
}

// UpdateVideoRequest is the payload for a partial article update. Absent
// fields are left untouched; present fields are applied even when empty.
// The id and publication timestamp are immutable through this endpoint, so
// neither is bound from the body.
type UpdateVideoRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Category     *string `json:"category"`
	Author       *string `json:"author"`
	IsFeatured   *bool   `json:"isFeatured"`
	Duration     *string `json:"duration"`
	Views        *int    `json:"views"`
	Location     *string `json:"location"`
	BodyType     *string `json:"bodytype"`
	Scenario     *string `json:"scenario"`
	Ethnicity    *string `json:"ethnicity"`
}

// List handles GET /api/articles.
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.repo.List(c.Request.Context(), parseSort(c))
	if err != nil {
		logger.Log.Error("failed to list articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load articles"})
		return
	}

	if videos == nil {
		videos = []*models.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

// Get handles GET /api/articles/:id.
func (h *VideoHandler) Get(c *gin.Context) {
	id := c.Param("id")

	video, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		logger.Log.Error("failed to get article", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load article"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// Create handles POST /api/articles.
func (h *VideoHandler) Create(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if strings.TrimSpace(req.VideoURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "videoUrl is required"})
		return
	}

	video := req.toVideo()
	if req.PublishedAt != "" {
		publishedAt, err := time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "publishedAt must be in RFC3339 format"})
			return
		}
		video.PublishedAt = publishedAt
	}

	if err := h.repo.Create(c.Request.Context(), video); err != nil {
		if db.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Duplicate video URL - " + video.Title})
			return
		}
		logger.Log.Error("failed to create article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	h.publish(c, &service.CatalogueEvent{
		Type:    service.EventVideoCreated,
		VideoID: video.ID,
		Video:   video,
	})

	c.JSON(http.StatusCreated, video)
}

// Update handles PUT /api/articles/:id.
func (h *VideoHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	video, err := h.repo.Update(c.Request.Context(), id, req.toParams())
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		if db.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Duplicate video URL"})
			return
		}
		logger.Log.Error("failed to update article", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	h.publish(c, &service.CatalogueEvent{
		Type:    service.EventVideoUpdated,
		VideoID: video.ID,
		Video:   video,
	})

	c.JSON(http.StatusOK, video)
}

// Delete handles DELETE /api/articles/:id. Deleting an absent id succeeds.
func (h *VideoHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		logger.Log.Error("failed to delete article", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	h.publish(c, &service.CatalogueEvent{
		Type:    service.EventVideoDeleted,
		VideoID: id,
	})

	c.Status(http.StatusNoContent)
}

// Browse handles GET /api/browse: the portal listing with facet filtering
// and pagination.
func (h *VideoHandler) Browse(c *gin.Context) {
	videos, err := h.repo.List(c.Request.Context(), parseSort(c))
	if err != nil {
		logger.Log.Error("failed to browse articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load articles"})
		return
	}

	filtered := listing.FilterByFacet(videos, c.Query("filter"))

	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	c.JSON(http.StatusOK, listing.Paginate(filtered, page, listing.DefaultPageSize))
}

// Search handles GET /api/search. An empty query yields an empty result,
// not an error.
func (h *VideoHandler) Search(c *gin.Context) {
	videos, err := h.repo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Log.Error("failed to search articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	if videos == nil {
		videos = []*models.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

// Facets handles GET /api/facets, returning the distinct filter values the
// portal offers. Specific fields may be requested via ?fields=category,author.
func (h *VideoHandler) Facets(c *gin.Context) {
	var fields []string
	if raw := c.Query("fields"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if field = strings.TrimSpace(field); field != "" {
				fields = append(fields, field)
			}
		}
	}

	values, err := h.repo.DistinctValues(c.Request.Context(), fields...)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownFacet) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Log.Error("failed to load facets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load facets"})
		return
	}

	if values == nil {
		values = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}

// publish emits a catalogue event without affecting the response. Failures
// are logged only.
func (h *VideoHandler) publish(c *gin.Context, event *service.CatalogueEvent) {
	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		logger.Log.Warn("failed to publish catalogue event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

func parseSort(c *gin.Context) repository.SortKey {
	switch c.Query("sort") {
	case string(repository.SortMostViewed):
		return repository.SortMostViewed
	case string(repository.SortTopRated):
		return repository.SortTopRated
	default:
		return repository.SortLatest
	}
}

func (req *CreateVideoRequest) toVideo() *models.Video {
	video := &models.Video{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		Author:       req.Author,
		IsFeatured:   req.IsFeatured,
		Duration:     req.Duration,
		Views:        req.Views,
		Location:     req.Location,
		BodyType:     req.BodyType,
		Scenario:     req.Scenario,
		Ethnicity:    req.Ethnicity,
	}

	if video.Description == "" {
		video.Description = video.Title
	}
	if video.ThumbnailURL == "" {
		video.ThumbnailURL = models.PlaceholderThumbnail(video.Title)
	}
	if video.Category == "" {
		video.Category = models.DefaultCategory
	}
	if video.Author == "" {
		video.Author = models.DefaultAuthor
	}
	if video.Views < 0 {
		video.Views = 0
	}

	return video
}

func (req *UpdateVideoRequest) toParams() repository.UpdateVideoParams {
	return repository.UpdateVideoParams{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		Author:       req.Author,
		IsFeatured:   req.IsFeatured,
		Duration:     req.Duration,
		Views:        req.Views,
		Location:     req.Location,
		BodyType:     req.BodyType,
		Scenario:     req.Scenario,
		Ethnicity:    req.Ethnicity,
	}
}
