package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "kpidash/internal/api/v1"
	"kpidash/internal/config"
	"kpidash/internal/service/store"
)

// sessionMaxIdle 手动录入会话的空闲保留时间
const sessionMaxIdle = 24 * time.Hour

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	sessions *store.MemoryStore
	v1       *v1.Handler
	log      *slog.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, version string, logger *slog.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	sessions := store.NewMemoryStore()
	v1Handler := v1.NewHandler(sessions, v1.Options{
		Version:        version,
		DefaultCompany: cfg.Report.DefaultCompany,
		DefaultFormat:  cfg.Report.DefaultFormat,
		DownloadTTL:    cfg.DownloadTTL(),
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         logger,
	})

	s := &Server{
		router:   gin.New(),
		sessions: sessions,
		v1:       v1Handler,
		log:      logger,
	}
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes()

	s.setupRoutes(version)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(version string) {
	s.router.Use(requestID(), requestLogger(s.log), gin.Recovery(), cors())

	s.router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// V1 API 路由；/api/v1 为带版本号的别名
	s.v1.RegisterRoutes(s.router.Group("/api"))
	s.v1.RegisterRoutes(s.router.Group("/api/v1"))

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "kpidash",
			"version": version,
			"api":     "/api",
		})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Handler 返回 http.Handler，供 http.Server 使用
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions 获取会话存储（用于测试）
func (s *Server) Sessions() *store.MemoryStore {
	return s.sessions
}

// RunJanitor 定期清理空闲会话，直到 ctx 结束
func (s *Server) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.PruneIdle(sessionMaxIdle); n > 0 {
				s.log.Info("pruned idle sessions", "count", n)
			}
		}
	}
}
