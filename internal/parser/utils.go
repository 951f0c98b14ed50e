package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber 解析数值单元格
//
// 空白或 NaN 视为缺失（返回 nil）；千分位分隔符会被移除；其他无法解析的文本返回 ok=false。
func ParseNumber(text string) (v *float64, ok bool) {
	val := strings.TrimSpace(text)
	if val == "" {
		return nil, true
	}
	// 移除千分位分隔符
	val = strings.ReplaceAll(val, ",", "")
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	if math.IsNaN(f) {
		return nil, true
	}
	if math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

// IsBlankRow 判断整行是否为空
func IsBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ColumnIndex 构建列名到索引的映射（精确匹配，重复列名取第一次出现）
func ColumnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		if _, ok := idx[col]; !ok {
			idx[col] = i
		}
	}
	return idx
}
