package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kpidash/internal/model"
	"kpidash/internal/service/calculator"
)

// KPIRow 带状态的记录
type KPIRow struct {
	model.KPIRecord
	Status model.Status `json:"status"`
}

// SessionKPIsResponse 会话记录列表
type SessionKPIsResponse struct {
	SessionID string              `json:"sessionId"`
	Rows      []KPIRow            `json:"rows"`
	Summary   model.StatusSummary `json:"summary"`
}

// CreateSession 新建手动录入会话
// POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	id := h.sessions.CreateSession()
	h.log.Debug("session created", "session", id)
	c.JSON(http.StatusCreated, gin.H{"sessionId": id})
}

// DeleteSession 删除会话
// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListKPIs 列出会话记录（含状态与汇总）
// GET /api/sessions/:id/kpis
func (h *Handler) ListKPIs(c *gin.Context) {
	id := c.Param("id")
	records, err := h.sessions.Records(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	rows := make([]KPIRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, KPIRow{KPIRecord: rec, Status: calculator.ClassifyRecord(rec)})
	}
	c.JSON(http.StatusOK, SessionKPIsResponse{
		SessionID: id,
		Rows:      rows,
		Summary:   calculator.Summarize(records),
	})
}

// AppendKPI 追加一条手动录入记录
// POST /api/sessions/:id/kpis
func (h *Handler) AppendKPI(c *gin.Context) {
	var in kpiInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rec, err := in.toRecord()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msgs := calculator.ValidateRecord(rec); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(msgs, "; "), "details": msgs})
		return
	}

	saved, err := h.sessions.Append(c.Param("id"), rec)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, KPIRow{KPIRecord: saved, Status: calculator.ClassifyRecord(saved)})
}

// ClearKPIs 清空会话记录
// DELETE /api/sessions/:id/kpis
func (h *Handler) ClearKPIs(c *gin.Context) {
	if err := h.sessions.Clear(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
