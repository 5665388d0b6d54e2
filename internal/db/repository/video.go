// Package repository implements the catalogue query service over PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vplaza/catalogue-service-go/internal/db"
	"github.com/vplaza/catalogue-service-go/internal/db/models"
)

// SortKey selects the ordering for catalogue listings.
type SortKey string

const (
	// SortLatest orders by published_at descending (the default).
	SortLatest SortKey = "latest"
	// SortMostViewed orders by views descending.
	SortMostViewed SortKey = "most_viewed"
	// SortTopRated currently aliases to views descending. The product has
	// no rating signal yet, so "top rated" and "most viewed" produce the
	// same ordering.
	SortTopRated SortKey = "top_rated"
)

// FacetColumns are the columns DistinctValues may draw from. Anything else
// is rejected before reaching SQL.
var FacetColumns = []string{"category", "body_type", "scenario", "ethnicity", "author", "location"}

// ErrUnknownFacet is returned by DistinctValues for a field outside
// FacetColumns.
var ErrUnknownFacet = errors.New("unknown facet field")

// UpdateVideoParams carries a partial update. Nil fields are left unchanged;
// a non-nil pointer sets the field even when it points at a zero value, so
// "set to empty" and "leave alone" are distinguishable.
type UpdateVideoParams struct {
	Title        *string
	Description  *string
	VideoURL     *string
	ThumbnailURL *string
	Category     *string
	Author       *string
	PublishedAt  *time.Time
	IsFeatured   *bool
	Duration     *string
	Views        *int
	Location     *string
	BodyType     *string
	Scenario     *string
	Ethnicity    *string
}

// VideoRepository defines operations over the persisted video collection.
type VideoRepository interface {
	// Create inserts a new video. The store assigns the ID and stamps
	// PublishedAt with the current time when it is zero.
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves a single video or db.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Video, error)

	// List returns all videos ordered by the given sort key.
	List(ctx context.Context, sort SortKey) ([]*models.Video, error)

	// Update applies the non-nil fields of params and returns the updated
	// record, or db.ErrNotFound when the id does not exist.
	Update(ctx context.Context, id string, params UpdateVideoParams) (*models.Video, error)

	// Delete removes a video by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Search performs a case-insensitive substring match across title,
	// description, category and author. An empty query returns no rows.
	Search(ctx context.Context, query string) ([]*models.Video, error)

	// DistinctValues collects the sorted set of non-empty values across the
	// named facet columns.
	DistinctValues(ctx context.Context, fields ...string) ([]string, error)

	// ExistsByURL reports whether a video with the given URL is stored.
	ExistsByURL(ctx context.Context, videoURL string) (bool, error)
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a VideoRepository backed by the given pool.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

const videoColumns = `id, title, description, video_url, thumbnail_url, category, author,
	       published_at, is_featured, duration, views, location, body_type, scenario, ethnicity,
	       created_at, updated_at`

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.PublishedAt.IsZero() {
		video.PublishedAt = time.Now()
	}
	video.Category = strings.ToLower(video.Category)

	query := `
		INSERT INTO videos (id, title, description, video_url, thumbnail_url, category, author,
		                    published_at, is_featured, duration, views, location, body_type, scenario, ethnicity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Category,
		video.Author,
		video.PublishedAt,
		video.IsFeatured,
		video.Duration,
		video.Views,
		video.Location,
		video.BodyType,
		video.Scenario,
		video.Ethnicity,
	).Scan(&video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(video)...)
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) List(ctx context.Context, sort SortKey) ([]*models.Video, error) {
	orderBy := "published_at DESC"
	switch sort {
	case SortMostViewed, SortTopRated:
		orderBy = "views DESC, published_at DESC"
	}

	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY ` + orderBy

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) Update(ctx context.Context, id string, params UpdateVideoParams) (*models.Video, error) {
	sets := make([]string, 0, 15)
	args := make([]interface{}, 0, 16)
	args = append(args, id)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.VideoURL != nil {
		add("video_url", *params.VideoURL)
	}
	if params.ThumbnailURL != nil {
		add("thumbnail_url", *params.ThumbnailURL)
	}
	if params.Category != nil {
		add("category", strings.ToLower(*params.Category))
	}
	if params.Author != nil {
		add("author", *params.Author)
	}
	if params.PublishedAt != nil {
		add("published_at", *params.PublishedAt)
	}
	if params.IsFeatured != nil {
		add("is_featured", *params.IsFeatured)
	}
	if params.Duration != nil {
		add("duration", *params.Duration)
	}
	if params.Views != nil {
		add("views", *params.Views)
	}
	if params.Location != nil {
		add("location", *params.Location)
	}
	if params.BodyType != nil {
		add("body_type", *params.BodyType)
	}
	if params.Scenario != nil {
		add("scenario", *params.Scenario)
	}
	if params.Ethnicity != nil {
		add("ethnicity", *params.Ethnicity)
	}

	if len(sets) == 0 {
		// Nothing to change: behave like a fetch so callers still get
		// not-found semantics for absent ids.
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(
		`UPDATE videos SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), videoColumns,
	)

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(scanTargets(video)...)
	if err != nil {
		return nil, db.WrapError(err, "update video")
	}

	return video, nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete video")
	}
	return nil
}

func (r *videoRepository) Search(ctx context.Context, query string) ([]*models.Video, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []*models.Video{}, nil
	}

	pattern := "%" + escapeLike(trimmed) + "%"

	sql := `SELECT ` + videoColumns + `
		FROM videos
		WHERE title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1 OR author ILIKE $1
		ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, sql, pattern)
	if err != nil {
		return nil, db.WrapError(err, "search videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) DistinctValues(ctx context.Context, fields ...string) ([]string, error) {
	if len(fields) == 0 {
		fields = FacetColumns
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if !isFacetColumn(field) {
			return nil, fmt.Errorf("distinct values: %w %q", ErrUnknownFacet, field)
		}
		parts = append(parts, fmt.Sprintf("SELECT DISTINCT %s AS value FROM videos WHERE %s <> ''", field, field))
	}

	query := strings.Join(parts, " UNION ") + " ORDER BY value"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "distinct facet values")
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan facet value: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facet values: %w", err)
	}

	return values, nil
}

func (r *videoRepository) ExistsByURL(ctx context.Context, videoURL string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM videos WHERE video_url = $1)`, videoURL).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "check video url exists")
	}
	return exists, nil
}

func isFacetColumn(field string) bool {
	for _, column := range FacetColumns {
		if field == column {
			return true
		}
	}
	return false
}

// escapeLike escapes LIKE metacharacters so user queries match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func scanTargets(video *models.Video) []interface{} {
	return []interface{}{
		&video.ID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Category,
		&video.Author,
		&video.PublishedAt,
		&video.IsFeatured,
		&video.Duration,
		&video.Views,
		&video.Location,
		&video.BodyType,
		&video.Scenario,
		&video.Ethnicity,
		&video.CreatedAt,
		&video.UpdatedAt,
	}
}

// Helper function to scan multiple videos from query results
func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	var videos []*models.Video

	for rows.Next() {
		video := &models.Video{}
		if err := rows.Scan(scanTargets(video)...); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
