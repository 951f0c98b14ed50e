package util

import (
	"math"
	"strconv"
)

// AbsentText 缺失数值的展示文本
const AbsentText = "N/A"

// FormatNumber 以自然形式格式化数值：整数不带小数点，小数保留最短精度
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return AbsentText
	}
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatOptional 格式化可缺失数值
func FormatOptional(v *float64) string {
	if v == nil {
		return AbsentText
	}
	return FormatNumber(*v)
}
