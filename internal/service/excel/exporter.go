package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kpidash/internal/model"
)

const (
	TitleSheet = "Title"
	TableSheet = "Dashboard Status"

	// 每英寸约 10 个字符宽
	charsPerInch = 10
)

// Exporter 报告 xlsx 导出器：标题页 + 状态表页
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 将报告写入新的工作簿
func (e *Exporter) Export(rep *model.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	styles := newStyleCache(f)

	if err := f.SetSheetName("Sheet1", TitleSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeTitleSheet(f, styles, rep); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(TableSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeTableSheet(f, styles, rep); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write 导出并写入 w
func (e *Exporter) Write(w io.Writer, rep *model.Report) error {
	f, err := e.Export(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeTitleSheet(f *excelize.File, styles *styleCache, rep *model.Report) error {
	blocks := []model.TextBlock{rep.Title.Heading, rep.Title.Subheading}
	for i, block := range blocks {
		row := i + 1
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(TitleSheet, cell, block.Text); err != nil {
			return err
		}
		if err := f.MergeCell(TitleSheet, cell, fmt.Sprintf("H%d", row)); err != nil {
			return err
		}
		if err := styles.apply(TitleSheet, cell, block.Style, nil); err != nil {
			return err
		}
		if err := f.SetRowHeight(TitleSheet, row, block.Style.SizePt*1.5); err != nil {
			return err
		}
	}
	return f.SetColWidth(TitleSheet, "A", "H", 16)
}

func writeTableSheet(f *excelize.File, styles *styleCache, rep *model.Report) error {
	table := rep.Table
	lastCol, err := excelize.ColumnNumberToName(len(table.Columns))
	if err != nil {
		return err
	}

	// 第 1 行：表标题
	if err := f.SetCellValue(TableSheet, "A1", table.Caption.Text); err != nil {
		return err
	}
	if err := f.MergeCell(TableSheet, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := styles.apply(TableSheet, "A1", table.Caption.Style, nil); err != nil {
		return err
	}
	if err := f.SetRowHeight(TableSheet, 1, table.Caption.Style.SizePt*1.5); err != nil {
		return err
	}

	// 第 2 行：表头
	if err := writeCells(f, styles, 2, table.Header); err != nil {
		return err
	}

	// 第 3 行起：数据
	for i, row := range table.Rows {
		if err := writeCells(f, styles, i+3, row.Cells); err != nil {
			return err
		}
	}

	for i, col := range table.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(TableSheet, name, name, col.WidthIn*charsPerInch); err != nil {
			return err
		}
	}

	return f.SetPanes(TableSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})
}

func writeCells(f *excelize.File, styles *styleCache, row int, cells []model.Cell) error {
	for i, c := range cells {
		ref, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(TableSheet, ref, c.Text); err != nil {
			return err
		}
		if err := styles.apply(TableSheet, ref, c.Style, c.Fill); err != nil {
			return err
		}
	}
	return nil
}

type styleKey struct {
	text model.TextStyle
	fill model.RGB
	has  bool
}

// styleCache 相同样式只创建一次
type styleCache struct {
	f   *excelize.File
	ids map[styleKey]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[styleKey]int)}
}

func (s *styleCache) apply(sheet, cell string, ts model.TextStyle, fill *model.RGB) error {
	key := styleKey{text: ts}
	if fill != nil {
		key.fill = *fill
		key.has = true
	}

	id, ok := s.ids[key]
	if !ok {
		style := &excelize.Style{
			Font: &excelize.Font{
				Bold:  ts.Bold,
				Size:  ts.SizePt,
				Color: "#" + ts.Color.Hex(),
			},
			Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		}
		if fill != nil {
			style.Fill = excelize.Fill{Type: "pattern", Color: []string{"#" + fill.Hex()}, Pattern: 1}
			style.Alignment.Horizontal = "center"
		}
		var err error
		id, err = s.f.NewStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
		s.ids[key] = id
	}

	return s.f.SetCellStyle(sheet, cell, cell, id)
}
