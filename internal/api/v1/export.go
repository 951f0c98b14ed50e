package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kpidash/internal/exporter"
)

// ExportRequest 导出请求
type ExportRequest struct {
	ReportRequest
	Format string `json:"format"`
	Inline bool   `json:"inline"` // true 时直接返回 data URI
}

// ExportResponse 导出结果
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	DataURI     string `json:"dataUri,omitempty"`
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func (h *Handler) formatOrDefault(format string) string {
	if s := strings.TrimSpace(format); s != "" {
		return s
	}
	return h.opts.DefaultFormat
}

func (h *Handler) runExport(ctx context.Context, req ExportRequest, progress func(exporter.ProgressEvent)) (*exporter.Result, error) {
	rep, err := h.buildReport(req.ReportRequest)
	if err != nil {
		return nil, err
	}
	return h.registry.Export(ctx, rep, exporter.ExportOptions{
		Format:   h.formatOrDefault(req.Format),
		Company:  rep.Title.CompanyName,
		Progress: progress,
	})
}

func downloadPath(c *gin.Context, token string) string {
	prefix := "/api"
	if strings.HasPrefix(c.Request.URL.Path, "/api/v1/") {
		prefix = "/api/v1"
	}
	return fmt.Sprintf("%s/export/download/%s", prefix, token)
}

// Export 渲染并导出报告
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.runExport(c.Request.Context(), req, nil)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := ExportResponse{
		Filename:    res.Filename,
		ContentType: res.ContentType,
		Size:        len(res.Data),
	}
	if req.Inline {
		resp.DataURI = res.DataURI()
	} else {
		resp.DownloadURL = downloadPath(c, h.downloads.put(res, h.opts.DownloadTTL))
	}
	h.log.Info("export done", "file", res.Filename, "bytes", len(res.Data), "inline", req.Inline)
	c.JSON(http.StatusOK, resp)
}

// ExportStream 导出报告（SSE 进度 + 完成后提供下载地址）
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	format := h.formatOrDefault(req.Format)
	send(exportProgressEvent{
		Type:      "start",
		Message:   "Export started",
		Data:      map[string]any{"format": format},
		Timestamp: time.Now(),
	})

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	res, err := h.runExport(c.Request.Context(), req, progressFn)
	if err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "Export failed: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}

	token := h.downloads.put(res, h.opts.DownloadTTL)
	send(exportProgressEvent{
		Type:    "done",
		Message: "Export finished",
		Data: map[string]any{
			"percent":     100,
			"filename":    res.Filename,
			"downloadUrl": downloadPath(c, token),
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 下载导出的文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	res, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	c.Header("Content-Disposition", buildContentDisposition(res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}

// buildContentDisposition 同时给出 ASCII 文件名与 RFC 5987 编码的 filename*
func buildContentDisposition(filename string) string {
	ascii := make([]rune, 0, len(filename))
	for _, r := range filename {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		ascii = append(ascii, r)
	}
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", string(ascii), url.PathEscape(filename))
}
