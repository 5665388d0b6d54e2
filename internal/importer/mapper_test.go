package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapVideoFields_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{
			name: "missing title",
			raw:  map[string]interface{}{"video_url": "https://example.com/v/1"},
		},
		{
			name: "missing url",
			raw:  map[string]interface{}{"title": "A Video"},
		},
		{
			name: "empty title",
			raw:  map[string]interface{}{"title": "", "video_url": "https://example.com/v/1"},
		},
		{
			name: "non-string title",
			raw:  map[string]interface{}{"title": 42.0, "video_url": "https://example.com/v/1"},
		},
		{
			name: "empty record",
			raw:  map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, MapVideoFields(tt.raw))
		})
	}
}

func TestMapVideoFields_AliasPriority(t *testing.T) {
	t.Run("first url alias wins", func(t *testing.T) {
		video := MapVideoFields(map[string]interface{}{
			"title":     "Clip",
			"streamurl": "https://example.com/stream",
			"url":       "https://example.com/other",
		})
		require.NotNil(t, video)
		assert.Equal(t, "https://example.com/stream", video.VideoURL)
	})

	t.Run("empty alias falls through", func(t *testing.T) {
		video := MapVideoFields(map[string]interface{}{
			"title":     "Clip",
			"streamurl": "",
			"link":      "https://example.com/link",
		})
		require.NotNil(t, video)
		assert.Equal(t, "https://example.com/link", video.VideoURL)
	})

	t.Run("name resolves as title", func(t *testing.T) {
		video := MapVideoFields(map[string]interface{}{
			"name": "Named Clip",
			"url":  "https://example.com/v/2",
		})
		require.NotNil(t, video)
		assert.Equal(t, "Named Clip", video.Title)
	})
}

func TestMapVideoFields_Defaults(t *testing.T) {
	video := MapVideoFields(map[string]interface{}{
		"title": "Deep Sea Documentary",
		"url":   "https://example.com/v/3",
	})
	require.NotNil(t, video)

	assert.Equal(t, "Deep Sea Documentary", video.Description)
	assert.Equal(t, "movies", video.Category)
	assert.Equal(t, "Unknown", video.Author)
	assert.Equal(t, "https://placehold.co/800x450/333/fff?text=Deep+Sea+Documentary", video.ThumbnailURL)
	assert.False(t, video.IsFeatured)
	assert.Zero(t, video.Views)
	assert.WithinDuration(t, time.Now(), video.PublishedAt, 5*time.Second)
}

func TestMapVideoFields_CategoryLowercased(t *testing.T) {
	video := MapVideoFields(map[string]interface{}{
		"title":    "Clip",
		"url":      "https://example.com/v/4",
		"category": "Documentary",
	})
	require.NotNil(t, video)
	assert.Equal(t, "documentary", video.Category)
}

func TestMapVideoFields_PublishedAt(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		video := MapVideoFields(map[string]interface{}{
			"title":        "Clip",
			"url":          "https://example.com/v/5",
			"published_at": "2024-03-15T10:30:00Z",
		})
		require.NotNil(t, video)
		assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), video.PublishedAt)
	})

	t.Run("plain date", func(t *testing.T) {
		video := MapVideoFields(map[string]interface{}{
			"title": "Clip",
			"url":   "https://example.com/v/6",
			"date":  "2023-11-01",
		})
		require.NotNil(t, video)
		assert.Equal(t, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), video.PublishedAt)
	})

	t.Run("unparseable falls back to now", func(t *testing.T) {
		video := MapVideoFields(map[string]interface{}{
			"title":        "Clip",
			"url":          "https://example.com/v/7",
			"published_at": "next tuesday",
		})
		require.NotNil(t, video)
		assert.WithinDuration(t, time.Now(), video.PublishedAt, 5*time.Second)
	})
}

func TestMapVideoFields_Views(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"number", 1234.0, 1234},
		{"string with separators", "12,345", 12345},
		{"plain string", "987", 987},
		{"negative", -5.0, 0},
		{"garbage string", "a lot", 0},
		{"absent", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]interface{}{
				"title": "Clip",
				"url":   "https://example.com/v/8",
			}
			if tt.value != nil {
				raw["views"] = tt.value
			}
			video := MapVideoFields(raw)
			require.NotNil(t, video)
			assert.Equal(t, tt.want, video.Views)
		})
	}
}

func TestMapVideoFields_Featured(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"number one", 1.0, true},
		{"number zero", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := MapVideoFields(map[string]interface{}{
				"title":       "Clip",
				"url":         "https://example.com/v/9",
				"is_featured": tt.value,
			})
			require.NotNil(t, video)
			assert.Equal(t, tt.want, video.IsFeatured)
		})
	}
}

func TestMapVideoFields_DoesNotMutateInput(t *testing.T) {
	raw := map[string]interface{}{
		"title": "Clip",
		"url":   "https://example.com/v/10",
	}
	_ = MapVideoFields(raw)
	assert.Len(t, raw, 2)
}
