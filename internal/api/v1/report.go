package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kpidash/internal/metrics"
	"kpidash/internal/model"
)

var errNoRecords = errors.New("records or sessionId is required")

// ReportRequest 报告请求：直接提供 records，或引用手动录入会话
type ReportRequest struct {
	Company   string            `json:"company"`
	Records   []model.KPIRecord `json:"records"`
	SessionID string            `json:"sessionId"`
}

// ReportResponse 渲染后的报告文档
type ReportResponse struct {
	Report  *model.Report       `json:"report"`
	Summary model.StatusSummary `json:"summary"`
}

func (h *Handler) companyOrDefault(company string) string {
	if s := strings.TrimSpace(company); s != "" {
		return s
	}
	return h.opts.DefaultCompany
}

// resolveRecords 取请求中的记录；给出 sessionId 时以会话内容为准
func (h *Handler) resolveRecords(req ReportRequest) ([]model.KPIRecord, error) {
	if req.SessionID != "" {
		return h.sessions.Records(req.SessionID)
	}
	if req.Records == nil {
		return nil, errNoRecords
	}
	return req.Records, nil
}

// buildReport 渲染报告
func (h *Handler) buildReport(req ReportRequest) (*model.Report, error) {
	records, err := h.resolveRecords(req)
	if err != nil {
		return nil, err
	}
	rep, err := h.renderer.Render(h.companyOrDefault(req.Company), records)
	if err != nil {
		return nil, err
	}
	metrics.ObserveSummary(rep.Summary())
	return rep, nil
}

// RenderReport 渲染报告并以 JSON 返回
// POST /api/report
func (h *Handler) RenderReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rep, err := h.buildReport(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReportResponse{Report: rep, Summary: rep.Summary()})
}
