package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"kpidash/internal/model"
)

const (
	mmPerInch = 25.4
	margin    = 15.0
	rowHeight = 9.0
	fontName  = "Helvetica"
)

// Writer PDF 报告输出：第 1 页标题，第 2 页起为状态表
type Writer struct {
	// CreationDate 非零时写入固定创建时间，使输出可重复
	CreationDate time.Time
}

// NewWriter 创建 Writer
func NewWriter() *Writer {
	return &Writer{}
}

// Build 生成 PDF 文档对象
func (w *Writer) Build(rep *model.Report) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCatalogSort(true)
	if !w.CreationDate.IsZero() {
		pdf.SetCreationDate(w.CreationDate)
		pdf.SetModificationDate(w.CreationDate)
	}
	pdf.SetTitle(rep.Title.Heading.Text, true)
	pdf.SetCreator("kpidash", true)

	// 内置字体仅支持 cp1252，其他字符会被替换
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeTitlePage(pdf, tr, rep.Title)
	writeTablePages(pdf, tr, rep.Table)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("PDF build error: %w", err)
	}
	return pdf, nil
}

// Write 生成并输出 PDF
func (w *Writer) Write(out io.Writer, rep *model.Report) error {
	pdf, err := w.Build(rep)
	if err != nil {
		return err
	}
	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("PDF output error: %w", err)
	}
	return nil
}

func writeTitlePage(pdf *fpdf.Fpdf, tr func(string) string, title model.TitleSection) {
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	pdf.SetY(pageHeight / 3)
	setText(pdf, title.Heading.Style)
	pdf.MultiCell(0, ptToMM(title.Heading.Style.SizePt)*1.2, tr(title.Heading.Text), "", "C", false)

	pdf.Ln(6)
	setText(pdf, title.Subheading.Style)
	pdf.MultiCell(0, ptToMM(title.Subheading.Style.SizePt)*1.2, tr(title.Subheading.Text), "", "C", false)
}

func writeTablePages(pdf *fpdf.Fpdf, tr func(string) string, table model.TableSection) {
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	setText(pdf, table.Caption.Style)
	pdf.CellFormat(0, ptToMM(table.Caption.Style.SizePt)*1.2, tr(table.Caption.Text), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := make([]float64, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = col.WidthIn * mmPerInch
	}

	writeRow(pdf, tr, widths, table.Header)
	for _, row := range table.Rows {
		// 换页后重复表头
		if pdf.GetY()+rowHeight > pageHeight-margin {
			pdf.AddPage()
			writeRow(pdf, tr, widths, table.Header)
		}
		writeRow(pdf, tr, widths, row.Cells)
	}
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, cells []model.Cell) {
	pdf.SetDrawColor(200, 200, 200)
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		setText(pdf, c.Style)
		fill := c.Fill != nil
		align := "L"
		if fill {
			pdf.SetFillColor(int(c.Fill.R), int(c.Fill.G), int(c.Fill.B))
			align = "C"
		}
		pdf.CellFormat(widths[i], rowHeight, tr(c.Text), "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}

func setText(pdf *fpdf.Fpdf, s model.TextStyle) {
	style := ""
	if s.Bold {
		style = "B"
	}
	pdf.SetFont(fontName, style, s.SizePt)
	pdf.SetTextColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
}

func ptToMM(pt float64) float64 {
	return pt * mmPerInch / 72
}
