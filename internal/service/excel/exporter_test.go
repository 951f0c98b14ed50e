package excel_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"kpidash/internal/model"
	"kpidash/internal/service/excel"
	"kpidash/internal/service/report"
)

func renderSample(t *testing.T, records []model.KPIRecord) *model.Report {
	t.Helper()

	rep, err := report.NewRenderer().Render("Acme Corp", records)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return rep
}

func fillColor(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()

	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		t.Fatalf("GetStyle failed: %v", err)
	}
	if len(style.Fill.Color) == 0 {
		return ""
	}
	c := strings.ToUpper(strings.TrimPrefix(style.Fill.Color[0], "#"))
	if len(c) > 6 {
		c = c[len(c)-6:]
	}
	return c
}

func TestExporterWritesTitleAndTable(t *testing.T) {
	rep := renderSample(t, []model.KPIRecord{
		{CampaignType: "Events", KPIName: "Leads", Benchmark: model.Float(100), Actual: model.Float(100), Direction: model.HigherIsBetter},
		{CampaignType: "Social", KPIName: "CPC", Benchmark: model.Float(2), Actual: model.Float(2.15), Direction: model.LowerIsBetter},
		{CampaignType: "Influencer", KPIName: "Reach", Benchmark: model.Float(1000), Actual: model.Float(500), Direction: model.HigherIsBetter},
		{CampaignType: "Other", KPIName: "NPS", Direction: model.HigherIsBetter},
	})

	var buf bytes.Buffer
	if err := excel.NewExporter().Write(&buf, rep); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != excel.TitleSheet || sheets[1] != excel.TableSheet {
		t.Fatalf("sheets=%v", sheets)
	}

	if got, _ := f.GetCellValue(excel.TitleSheet, "A1"); got != "Marketing KPI Dashboard - Acme Corp Benchmarks" {
		t.Fatalf("A1=%q", got)
	}
	if got, _ := f.GetCellValue(excel.TitleSheet, "A2"); got != "Status view across Campaign Types and KPIs" {
		t.Fatalf("A2=%q", got)
	}

	rows, err := f.GetRows(excel.TableSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("rows=%d, want 6 (caption + header + 4)", len(rows))
	}
	if rows[0][0] != "Dashboard Status" {
		t.Fatalf("caption=%q", rows[0][0])
	}
	wantHeader := []string{"Campaign Type", "KPI Name", "Benchmark", "Actual", "Direction", "Status"}
	for i, h := range wantHeader {
		if rows[1][i] != h {
			t.Fatalf("header[%d]=%q, want %q", i, rows[1][i], h)
		}
	}

	wantStatus := []string{"Green", "Yellow", "Red", "Gray"}
	wantFill := []string{"228B22", "FFA500", "DC143C", "808080"}
	for i := range wantStatus {
		row := rows[i+2]
		if row[5] != wantStatus[i] {
			t.Fatalf("row %d status=%q, want %q", i, row[5], wantStatus[i])
		}
		cell, _ := excelize.CoordinatesToCellName(6, i+3)
		if got := fillColor(t, f, excel.TableSheet, cell); got != wantFill[i] {
			t.Fatalf("row %d fill=%q, want %q", i, got, wantFill[i])
		}
	}
	if rows[3][3] != "2.15" || rows[5][2] != "N/A" {
		t.Fatalf("unexpected value cells: %v / %v", rows[3], rows[5])
	}
	if got := fillColor(t, f, excel.TableSheet, "A2"); got != "333333" {
		t.Fatalf("header fill=%q", got)
	}
}

func TestExporterEmptyReport(t *testing.T) {
	rep := renderSample(t, nil)

	f, err := excel.NewExporter().Export(rep)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(excel.TableSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d, want caption + header", len(rows))
	}
	width, err := f.GetColWidth(excel.TableSheet, "B")
	if err != nil {
		t.Fatalf("GetColWidth failed: %v", err)
	}
	if width != 25 {
		t.Fatalf("KPI Name width=%v, want 25", width)
	}
}
