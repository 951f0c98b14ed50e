// Package mdreport 将报告文档输出为 Markdown，便于在文档系统或代码仓库中分享。
package mdreport

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"kpidash/internal/model"
)

// statusMarkers Markdown 无法着色，用色块 emoji 标识状态
var statusMarkers = map[model.Status]string{
	model.StatusGreen:  "🟢",
	model.StatusYellow: "🟡",
	model.StatusRed:    "🔴",
	model.StatusGray:   "⚫",
}

// Writer Markdown 报告输出
type Writer struct{}

// NewWriter 创建 Writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write 输出报告
func (w *Writer) Write(out io.Writer, rep *model.Report) error {
	md := markdown.NewMarkdown(out)

	md.H1(rep.Title.Heading.Text)
	md.PlainText("")
	md.PlainText("_" + rep.Title.Subheading.Text + "_")
	md.PlainText("")

	md.H2(rep.Table.Caption.Text)
	md.PlainText("")

	header := make([]string, 0, len(rep.Table.Header))
	for _, c := range rep.Table.Header {
		header = append(header, escapeCell(c.Text))
	}

	rows := make([][]string, 0, len(rep.Table.Rows))
	for _, row := range rep.Table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for i, c := range row.Cells {
			text := escapeCell(c.Text)
			if i == len(row.Cells)-1 {
				text = statusCell(row.Status)
			}
			cells = append(cells, text)
		}
		rows = append(rows, cells)
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})

	return md.Build()
}

func statusCell(s model.Status) string {
	marker, ok := statusMarkers[s]
	if !ok {
		marker = statusMarkers[model.StatusGray]
	}
	return marker + " **" + string(s) + "**"
}

// escapeCell 换行与竖线会破坏表格结构：换行替换为空格，竖线转义
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", `\|`)
}
