// Package v1 KPI 看板 HTTP API。
package v1

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"kpidash/internal/exporter"
	"kpidash/internal/importer"
	"kpidash/internal/service/report"
	"kpidash/internal/service/store"
)

// Options 处理器配置
type Options struct {
	Version        string
	DefaultCompany string
	DefaultFormat  string
	DownloadTTL    time.Duration
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Handler V1 API 处理器
type Handler struct {
	opts      Options
	log       *slog.Logger
	sessions  *store.MemoryStore
	renderer  *report.Renderer
	registry  *exporter.Registry
	importer  *importer.Coordinator
	downloads *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(sessions *store.MemoryStore, opts Options) *Handler {
	if opts.DownloadTTL <= 0 {
		opts.DownloadTTL = 10 * time.Minute
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 << 20
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = exporter.FormatXLSX
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		opts:      opts,
		log:       logger,
		sessions:  sessions,
		renderer:  report.NewRenderer(),
		registry:  exporter.NewRegistry(),
		importer:  importer.NewCoordinator(),
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/options", h.GetOptions)

	// 单条判定
	router.POST("/classify", h.Classify)

	// 数据导入
	router.POST("/import", h.Import)

	// 手动录入会话
	router.POST("/sessions", h.CreateSession)
	router.DELETE("/sessions/:id", h.DeleteSession)
	router.GET("/sessions/:id/kpis", h.ListKPIs)
	router.POST("/sessions/:id/kpis", h.AppendKPI)
	router.DELETE("/sessions/:id/kpis", h.ClearKPIs)

	// 报告与导出
	router.POST("/report", h.RenderReport)
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
