package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kpidash/internal/importer"
	"kpidash/internal/metrics"
)

// Import 上传 KPI 文件并返回解析结果
// POST /api/import (multipart: file, 可选 sheet)
func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		if code := statusFor(err); code == http.StatusRequestEntityTooLarge {
			c.JSON(code, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing upload field \"file\""})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer f.Close()

	res, err := h.importer.Import(c.Request.Context(), importer.ImportOptions{
		Filename: fh.Filename,
		Reader:   f,
		Sheet:    c.PostForm("sheet"),
	})
	if err != nil {
		h.log.Warn("import rejected", "file", fh.Filename, "err", err)
		h.writeError(c, err)
		return
	}
	metrics.ObserveSummary(res.Summary)

	h.log.Info("import done",
		"file", res.Filename,
		"rows", len(res.Records),
		"dropped", res.Dropped)
	c.JSON(http.StatusOK, res)
}
