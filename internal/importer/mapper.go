// Package importer implements the bulk video import pipeline: field mapping
// of heterogeneous raw records, duplicate checking against the catalogue,
// and sequential batch processing with progress reporting.
package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vplaza/catalogue-service-go/internal/db/models"
)

// Accepted alias keys per canonical field, in priority order. The first
// present, non-empty alias wins.
var (
	titleAliases       = []string{"title", "name", "video_title"}
	urlAliases         = []string{"streamurl", "stream_url", "video_url", "videoUrl", "url", "link", "video_link"}
	thumbnailAliases   = []string{"thumbnail", "thumbnail_url", "thumbnailUrl", "image", "poster", "cover"}
	descriptionAliases = []string{"description", "desc", "summary", "about"}
	categoryAliases    = []string{"category", "genre", "type"}
	authorAliases      = []string{"author", "uploader", "channel", "creator", "user"}
	publishedAliases   = []string{"published_at", "publishedAt", "created_at", "date"}
	featuredAliases    = []string{"is_featured", "isFeatured", "featured"}
	bodyTypeAliases    = []string{"bodytype", "body_type"}
)

// MapVideoFields normalizes one raw record into a canonical Video candidate.
// It returns nil when neither a title alias nor a URL alias resolves; every
// other field has a default. The function is pure: the same input always
// produces the same output and the raw map is never modified.
func MapVideoFields(raw map[string]interface{}) *models.Video {
	title := resolveString(raw, titleAliases)
	if title == "" {
		return nil
	}

	videoURL := resolveString(raw, urlAliases)
	if videoURL == "" {
		return nil
	}

	thumbnailURL := resolveString(raw, thumbnailAliases)
	if thumbnailURL == "" {
		thumbnailURL = models.PlaceholderThumbnail(title)
	}

	description := resolveString(raw, descriptionAliases)
	if description == "" {
		description = title
	}

	category := resolveString(raw, categoryAliases)
	if category == "" {
		category = models.DefaultCategory
	}
	category = strings.ToLower(category)

	author := resolveString(raw, authorAliases)
	if author == "" {
		author = models.DefaultAuthor
	}

	publishedAt := resolveTime(raw, publishedAliases)

	return &models.Video{
		Title:        title,
		Description:  description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Category:     category,
		Author:       author,
		PublishedAt:  publishedAt,
		IsFeatured:   resolveBool(raw, featuredAliases),
		Duration:     resolveString(raw, []string{"duration"}),
		Views:        resolveViews(raw["views"]),
		Location:     resolveString(raw, []string{"location"}),
		BodyType:     resolveString(raw, bodyTypeAliases),
		Scenario:     resolveString(raw, []string{"scenario"}),
		Ethnicity:    resolveString(raw, []string{"ethnicity"}),
	}
}

func resolveString(raw map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if value, ok := raw[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func resolveBool(raw map[string]interface{}, aliases []string) bool {
	for _, key := range aliases {
		switch value := raw[key].(type) {
		case bool:
			if value {
				return true
			}
		case string:
			if parsed, err := strconv.ParseBool(value); err == nil && parsed {
				return true
			}
		case float64:
			if value != 0 {
				return true
			}
		}
	}
	return false
}

// resolveTime parses the first resolvable published-date alias. RFC3339 and
// plain dates are accepted; anything else falls back to the current time, as
// does an absent value.
func resolveTime(raw map[string]interface{}, aliases []string) time.Time {
	for _, key := range aliases {
		value, ok := raw[key].(string)
		if !ok || value == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t
		}
	}
	return time.Now()
}

// resolveViews coerces the raw views value to a non-negative integer.
// String values may carry thousands separators ("12,345"); anything that
// does not parse cleanly becomes 0, never an error.
func resolveViews(value interface{}) int {
	switch v := value.(type) {
	case float64:
		if v < 0 || math.IsNaN(v) {
			return 0
		}
		return int(v)
	case int:
		if v < 0 {
			return 0
		}
		return v
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		parsed, err := strconv.Atoi(cleaned)
		if err != nil || parsed < 0 {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
