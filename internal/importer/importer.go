package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vplaza/catalogue-service-go/internal/db"
	"github.com/vplaza/catalogue-service-go/internal/db/repository"
	"github.com/vplaza/catalogue-service-go/internal/metrics"
	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

// ProgressFunc is invoked after every processed row with the number of rows
// processed so far and the batch total.
type ProgressFunc func(processed, total int)

// Result summarizes one import batch. Errors holds one message per failed
// row, tagged with the 1-based row index, in input order.
type Result struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Importer drives raw records through mapping, duplicate checking and
// insertion. Rows are processed strictly one at a time; a failing row is
// recorded and never aborts the batch.
type Importer struct {
	repo repository.VideoRepository
}

// New creates an Importer writing to the given repository.
func New(repo repository.VideoRepository) *Importer {
	return &Importer{repo: repo}
}

// Run processes every raw record in order. The progress callback may be nil.
func (im *Importer) Run(ctx context.Context, raws []map[string]interface{}, progress ProgressFunc) *Result {
	result := &Result{Errors: []string{}}
	total := len(raws)

	for i, raw := range raws {
		im.processRow(ctx, i, raw, result)

		if progress != nil {
			progress(i+1, total)
		}
	}

	metrics.ImportBatchesTotal.Inc()
	logger.Log.Info("import batch finished",
		zap.Int("total", total),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)

	return result
}

func (im *Importer) processRow(ctx context.Context, index int, raw map[string]interface{}, result *Result) {
	video := MapVideoFields(raw)
	if video == nil {
		result.fail(index, "Missing required fields (title or video_url)")
		return
	}

	// Best-effort pre-check for a friendly row error. The unique constraint
	// on video_url is the real guard; a lost race surfaces below as a
	// duplicate-key insert error.
	exists, err := im.repo.ExistsByURL(ctx, video.VideoURL)
	if err != nil {
		result.fail(index, err.Error())
		return
	}
	if exists {
		result.fail(index, fmt.Sprintf("Duplicate video URL - %s", video.Title))
		return
	}

	if err := im.repo.Create(ctx, video); err != nil {
		if db.IsDuplicateKey(err) {
			result.fail(index, fmt.Sprintf("Duplicate video URL - %s", video.Title))
			return
		}
		result.fail(index, err.Error())
		return
	}

	result.Success++
	metrics.ImportRowsTotal.WithLabelValues("success").Inc()
}

func (r *Result) fail(index int, message string) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", index+1, message))
	metrics.ImportRowsTotal.WithLabelValues("failed").Inc()
}
