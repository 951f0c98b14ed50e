package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kpidash/internal/model"
	"kpidash/internal/service/calculator"
)

// ClassifyRequest 单条判定请求，null 或缺省均视为缺失
type ClassifyRequest struct {
	Actual    *float64 `json:"actual"`
	Benchmark *float64 `json:"benchmark"`
	Direction string   `json:"direction"`
}

// ClassifyResponse 判定结果
type ClassifyResponse struct {
	Status model.Status `json:"status"`
	Color  string       `json:"color"`
}

// Classify 判定单条 KPI 状态
// POST /api/classify
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := calculator.Classify(req.Actual, req.Benchmark, model.Direction(strings.TrimSpace(req.Direction)))
	c.JSON(http.StatusOK, ClassifyResponse{
		Status: status,
		Color:  h.renderer.Palette().Color(status).Hex(),
	})
}
