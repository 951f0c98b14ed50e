package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kpidash/internal/importer"
	"kpidash/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version        string   `json:"version"`
	Sessions       int      `json:"sessions"`       // 手动录入会话数
	Formats        []string `json:"formats"`        // 可用导出格式
	DefaultCompany string   `json:"defaultCompany"` // 公司名称默认值
	DefaultFormat  string   `json:"defaultFormat"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Version:        h.opts.Version,
		Sessions:       h.sessions.Count(),
		Formats:        h.registry.Names(),
		DefaultCompany: h.opts.DefaultCompany,
		DefaultFormat:  h.opts.DefaultFormat,
	})
}

// OptionsResponse 表单选项
type OptionsResponse struct {
	CampaignTypes  []string          `json:"campaignTypes"`
	Directions     []model.Direction `json:"directions"`
	Statuses       []model.Status    `json:"statuses"`
	Formats        []string          `json:"formats"`
	UploadTypes    []string          `json:"uploadTypes"`
	MaxUploadBytes int64             `json:"maxUploadBytes"`
}

// GetOptions 获取录入表单与导出选项
// GET /api/options
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		CampaignTypes:  model.CampaignTypes,
		Directions:     model.Directions,
		Statuses:       model.Statuses,
		Formats:        h.registry.Names(),
		UploadTypes:    importer.Extensions,
		MaxUploadBytes: h.opts.MaxUploadBytes,
	})
}
