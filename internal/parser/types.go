package parser

import (
	"fmt"
	"strings"

	"kpidash/internal/model"
)

// Result 解析结果
type Result struct {
	Records   []model.KPIRecord `json:"records"`
	TotalRows int               `json:"totalRows"` // 非空数据行数
	Dropped   int               `json:"dropped"`   // 因缺少活动类型或 KPI 名称被丢弃的行数
}

// MissingColumnsError 上传表格缺少必填列
type MissingColumnsError struct {
	Missing  []string
	Required []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s. Expected: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Required, ", "))
}

// InvalidValueError 数值列包含非数字文本
type InvalidValueError struct {
	Row    int // 源文件中的行号（从 1 开始，含表头）
	Column string
	Value  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("row %d: %s value %q is not a number", e.Row, e.Column, e.Value)
}
