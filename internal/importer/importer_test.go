package importer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vplaza/catalogue-service-go/internal/db"
	"github.com/vplaza/catalogue-service-go/internal/db/models"
	"github.com/vplaza/catalogue-service-go/internal/db/repository"
	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeVideoRepository keeps videos in memory keyed by URL.
type fakeVideoRepository struct {
	byURL     map[string]*models.Video
	createErr error
}

func newFakeVideoRepository() *fakeVideoRepository {
	return &fakeVideoRepository{byURL: make(map[string]*models.Video)}
}

func (f *fakeVideoRepository) Create(_ context.Context, video *models.Video) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byURL[video.VideoURL]; ok {
		return db.ErrDuplicateKey
	}
	f.byURL[video.VideoURL] = video
	return nil
}

func (f *fakeVideoRepository) GetByID(context.Context, string) (*models.Video, error) {
	return nil, db.ErrNotFound
}

func (f *fakeVideoRepository) List(context.Context, repository.SortKey) ([]*models.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepository) Update(context.Context, string, repository.UpdateVideoParams) (*models.Video, error) {
	return nil, db.ErrNotFound
}

func (f *fakeVideoRepository) Delete(context.Context, string) error { return nil }

func (f *fakeVideoRepository) Search(context.Context, string) ([]*models.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepository) DistinctValues(context.Context, ...string) ([]string, error) {
	return nil, nil
}

func (f *fakeVideoRepository) ExistsByURL(_ context.Context, videoURL string) (bool, error) {
	_, ok := f.byURL[videoURL]
	return ok, nil
}

func record(title, url string) map[string]interface{} {
	raw := map[string]interface{}{}
	if title != "" {
		raw["title"] = title
	}
	if url != "" {
		raw["video_url"] = url
	}
	return raw
}

func TestImporter_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("imports valid rows", func(t *testing.T) {
		repo := newFakeVideoRepository()
		imp := New(repo)

		result := imp.Run(ctx, []map[string]interface{}{
			record("First", "https://example.com/v/1"),
			record("Second", "https://example.com/v/2"),
		}, nil)

		assert.Equal(t, 2, result.Success)
		assert.Zero(t, result.Failed)
		assert.Empty(t, result.Errors)
		assert.Len(t, repo.byURL, 2)
	})

	t.Run("failing row does not abort batch", func(t *testing.T) {
		repo := newFakeVideoRepository()
		imp := New(repo)

		result := imp.Run(ctx, []map[string]interface{}{
			record("First", "https://example.com/v/1"),
			record("No URL", ""),
			record("Third", "https://example.com/v/3"),
		}, nil)

		assert.Equal(t, 2, result.Success)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Row 2: Missing required fields (title or video_url)", result.Errors[0])
	})

	t.Run("duplicate within batch", func(t *testing.T) {
		repo := newFakeVideoRepository()
		imp := New(repo)

		result := imp.Run(ctx, []map[string]interface{}{
			record("Original", "https://example.com/v/1"),
			record("Copy", "https://example.com/v/1"),
		}, nil)

		assert.Equal(t, 1, result.Success)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Row 2: Duplicate video URL - Copy", result.Errors[0])
	})

	t.Run("duplicate against existing catalogue", func(t *testing.T) {
		repo := newFakeVideoRepository()
		repo.byURL["https://example.com/v/1"] = &models.Video{Title: "Existing"}
		imp := New(repo)

		result := imp.Run(ctx, []map[string]interface{}{
			record("Incoming", "https://example.com/v/1"),
		}, nil)

		assert.Zero(t, result.Success)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, "Row 1: Duplicate video URL - Incoming", result.Errors[0])
	})

	t.Run("insert errors are reported per row", func(t *testing.T) {
		repo := newFakeVideoRepository()
		repo.createErr = errors.New("connection reset")
		imp := New(repo)

		result := imp.Run(ctx, []map[string]interface{}{
			record("First", "https://example.com/v/1"),
		}, nil)

		assert.Zero(t, result.Success)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors[0], "connection reset")
	})

	t.Run("lost race surfaces as duplicate", func(t *testing.T) {
		repo := newFakeVideoRepository()
		repo.createErr = db.ErrDuplicateKey
		imp := New(repo)

		result := imp.Run(ctx, []map[string]interface{}{
			record("Raced", "https://example.com/v/1"),
		}, nil)

		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, "Row 1: Duplicate video URL - Raced", result.Errors[0])
	})

	t.Run("progress is reported after every row", func(t *testing.T) {
		repo := newFakeVideoRepository()
		imp := New(repo)

		var calls [][2]int
		imp.Run(ctx, []map[string]interface{}{
			record("First", "https://example.com/v/1"),
			record("No URL", ""),
			record("Third", "https://example.com/v/3"),
		}, func(processed, total int) {
			calls = append(calls, [2]int{processed, total})
		})

		assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
	})

	t.Run("empty batch", func(t *testing.T) {
		repo := newFakeVideoRepository()
		imp := New(repo)

		result := imp.Run(ctx, nil, nil)

		assert.Zero(t, result.Success)
		assert.Zero(t, result.Failed)
		assert.Empty(t, result.Errors)
	})
}
