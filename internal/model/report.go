package model

import "fmt"

// RGB 颜色
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex 返回 "RRGGBB" 形式（无 #）
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// TextStyle 文本样式
type TextStyle struct {
	SizePt float64 `json:"sizePt"`
	Bold   bool    `json:"bold"`
	Color  RGB     `json:"color"`
}

// TextBlock 带样式的文本
type TextBlock struct {
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
}

// Cell 表格单元格，Fill 为 nil 表示无底色
type Cell struct {
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
	Fill  *RGB      `json:"fill,omitempty"`
}

// Column 列定义，宽度单位为英寸
type Column struct {
	Name    string  `json:"name"`
	WidthIn float64 `json:"widthIn"`
}

// Row 数据行
type Row struct {
	Cells  []Cell `json:"cells"`
	Status Status `json:"status"`
}

// TitleSection 标题页
type TitleSection struct {
	CompanyName string    `json:"companyName"`
	Heading     TextBlock `json:"heading"`
	Subheading  TextBlock `json:"subheading"`
}

// TableSection 数据表页
type TableSection struct {
	Caption TextBlock `json:"caption"`
	Columns []Column  `json:"columns"`
	Header  []Cell    `json:"header"`
	Rows    []Row     `json:"rows"`
}

// Report 渲染后的报告文档（内存对象，由导出器序列化）
type Report struct {
	Title TitleSection `json:"title"`
	Table TableSection `json:"table"`
}

// Summary 统计报告中各状态数量
func (r *Report) Summary() StatusSummary {
	var s StatusSummary
	for _, row := range r.Table.Rows {
		s.Add(row.Status)
	}
	return s
}
