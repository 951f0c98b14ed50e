package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kpidash/internal/exporter"
	"kpidash/internal/importer"
	"kpidash/internal/model"
	"kpidash/internal/parser"
	"kpidash/internal/service/report"
	"kpidash/internal/service/store"
)

// statusFor 将领域错误映射为 HTTP 状态码
func statusFor(err error) int {
	var (
		missingCols *parser.MissingColumnsError
		invalid     *parser.InvalidValueError
		recErr      *report.RecordError
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &missingCols),
		errors.As(err, &invalid),
		errors.As(err, &recErr),
		errors.Is(err, model.ErrMissingCampaignType),
		errors.Is(err, model.ErrMissingKPIName),
		errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, exporter.ErrUnknownFormat),
		errors.Is(err, errNoRecords):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError 输出 {"error": "..."}
func (h *Handler) writeError(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"err", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
