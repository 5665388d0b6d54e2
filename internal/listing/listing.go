// Package listing implements the pure filtering and pagination logic the
// portal applies to a catalogue result set before rendering.
package listing

import "github.com/vplaza/catalogue-service-go/internal/db/models"

// DefaultPageSize is the number of cards per portal page.
const DefaultPageSize = 16

// Page is one display page of a filtered result set. An empty page with a
// nil error is a valid "no results" state; it is never conflated with a
// load failure, which surfaces as an error from the data layer instead.
type Page struct {
	Items      []*models.Video `json:"items"`
	Number     int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
}

// MatchesFacet reports whether the filter value equals any of the record's
// six facet fields: category, bodytype, scenario, ethnicity, author,
// location. The filter is a single free-form tag, not a structured query.
func MatchesFacet(video *models.Video, filter string) bool {
	for _, value := range video.FacetValues() {
		if value != "" && value == filter {
			return true
		}
	}
	return false
}

// FilterByFacet returns the videos matching the filter value. An empty
// filter selects everything.
func FilterByFacet(videos []*models.Video, filter string) []*models.Video {
	if filter == "" {
		return videos
	}

	filtered := make([]*models.Video, 0, len(videos))
	for _, video := range videos {
		if MatchesFacet(video, filter) {
			filtered = append(filtered, video)
		}
	}
	return filtered
}

// Paginate slices the given videos into the requested 1-based page. Page
// numbers outside [1, totalPages] are clamped, never allowed to produce an
// out-of-range slice. A non-positive pageSize falls back to DefaultPageSize.
func Paginate(videos []*models.Video, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalItems := len(videos)
	totalPages := (totalItems + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Items:      videos[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}
