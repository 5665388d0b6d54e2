package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vplaza/catalogue-service-go/internal/importer"
	"github.com/vplaza/catalogue-service-go/internal/service"
	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

// ImportHandler serves the bulk import endpoint.
type ImportHandler struct {
	importer       *importer.Importer
	publisher      service.EventPublisher
	maxPayloadSize int64
}

// NewImportHandler creates an ImportHandler. A nil publisher disables event
// emission; maxPayloadSize <= 0 means no limit.
func NewImportHandler(imp *importer.Importer, publisher service.EventPublisher, maxPayloadSize int64) *ImportHandler {
	if publisher == nil {
		publisher = service.NoopPublisher{}
	}
	return &ImportHandler{
		importer:       imp,
		publisher:      publisher,
		maxPayloadSize: maxPayloadSize,
	}
}

// Import handles POST /api/import. The body is a JSON array of raw records
// or a single object treated as a one-element batch. The batch always runs
// to completion; per-row failures are reported in the result.
func (h *ImportHandler) Import(c *gin.Context) {
	body := c.Request.Body
	if h.maxPayloadSize > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxPayloadSize)
	}

	records, err := importer.ReadRecords(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid import payload"})
		return
	}

	result := h.importer.Run(c.Request.Context(), records, nil)

	if err := h.publisher.Publish(c.Request.Context(), &service.CatalogueEvent{
		Type:     service.EventBatchImported,
		Imported: result.Success,
		Failed:   result.Failed,
	}); err != nil {
		logger.Log.Warn("failed to publish import event", zap.Error(err))
	}

	c.JSON(http.StatusOK, result)
}
