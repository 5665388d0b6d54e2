// Package models contains the canonical catalogue records.
package models

import (
	"net/url"
	"time"
)

// Default values applied when a field cannot be resolved from input.
const (
	DefaultCategory = "movies"
	DefaultAuthor   = "Unknown"
)

const placeholderThumbnailBase = "https://placehold.co/800x450/333/fff?text="

// PlaceholderThumbnail builds the generated card image used when a record
// carries no thumbnail of its own.
func PlaceholderThumbnail(title string) string {
	return placeholderThumbnailBase + url.QueryEscape(title)
}

// Video is the canonical catalogue entry served by the portal. JSON tags
// match the portal API shape; database columns are snake_case.
type Video struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoURL     string    `json:"videoUrl" db:"video_url"`
	ThumbnailURL string    `json:"thumbnailUrl" db:"thumbnail_url"`
	Category     string    `json:"category" db:"category"`
	Author       string    `json:"author" db:"author"`
	PublishedAt  time.Time `json:"publishedAt" db:"published_at"`
	IsFeatured   bool      `json:"isFeatured" db:"is_featured"`
	Duration     string    `json:"duration,omitempty" db:"duration"`
	Views        int       `json:"views" db:"views"`
	Location     string    `json:"location,omitempty" db:"location"`
	BodyType     string    `json:"bodytype,omitempty" db:"body_type"`
	Scenario     string    `json:"scenario,omitempty" db:"scenario"`
	Ethnicity    string    `json:"ethnicity,omitempty" db:"ethnicity"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FacetValues returns the six facet fields checked when matching a single
// free-form filter value.
func (v *Video) FacetValues() []string {
	return []string{v.Category, v.BodyType, v.Scenario, v.Ethnicity, v.Author, v.Location}
}
