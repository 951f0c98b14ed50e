package report

import (
	"errors"
	"reflect"
	"testing"

	"kpidash/internal/model"
)

func sampleRecords() []model.KPIRecord {
	return []model.KPIRecord{
		{CampaignType: "Events", KPIName: "Registrations", Benchmark: model.Float(500), Actual: model.Float(520), Direction: model.HigherIsBetter},
		{CampaignType: "Digital/Search", KPIName: "Cost per Click", Benchmark: model.Float(1.2), Actual: model.Float(1.3), Direction: model.LowerIsBetter},
		{CampaignType: "Social", KPIName: "Engagement Rate", Benchmark: model.Float(0.05), Actual: model.Float(0.02), Direction: model.HigherIsBetter},
		{CampaignType: "Influencer", KPIName: "Reach", Direction: model.HigherIsBetter},
	}
}

func TestRender_TitleSection(t *testing.T) {
	t.Parallel()

	rep, err := NewRenderer().Render("Acme Corp", nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := rep.Title.Heading.Text, "Marketing KPI Dashboard - Acme Corp Benchmarks"; got != want {
		t.Fatalf("heading=%q, want %q", got, want)
	}
	if rep.Title.Subheading.Text != "Status view across Campaign Types and KPIs" {
		t.Fatalf("subheading=%q", rep.Title.Subheading.Text)
	}
	if rep.Title.Heading.Style.Color != (model.RGB{R: 51, G: 51, B: 51}) {
		t.Fatalf("heading color=%+v", rep.Title.Heading.Style.Color)
	}
	if rep.Title.Subheading.Style.Color != (model.RGB{R: 102, G: 102, B: 102}) {
		t.Fatalf("subheading color=%+v", rep.Title.Subheading.Style.Color)
	}
}

func TestRender_EmptyInputHeaderOnly(t *testing.T) {
	t.Parallel()

	rep, err := NewRenderer().Render("Acme", []model.KPIRecord{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(rep.Table.Rows) != 0 {
		t.Fatalf("rows=%d, want 0", len(rep.Table.Rows))
	}

	want := []string{"Campaign Type", "KPI Name", "Benchmark", "Actual", "Direction", "Status"}
	if len(rep.Table.Header) != len(want) {
		t.Fatalf("header len=%d, want %d", len(rep.Table.Header), len(want))
	}
	for i, cell := range rep.Table.Header {
		if cell.Text != want[i] {
			t.Fatalf("header[%d]=%q, want %q", i, cell.Text, want[i])
		}
		if !cell.Style.Bold || cell.Fill == nil || *cell.Fill != colorHeader {
			t.Fatalf("header[%d] style=%+v fill=%v", i, cell.Style, cell.Fill)
		}
	}
}

func TestRender_RowsInInputOrderWithStatusFill(t *testing.T) {
	t.Parallel()

	rep, err := NewRenderer().Render("Acme", sampleRecords())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	wantNames := []string{"Registrations", "Cost per Click", "Engagement Rate", "Reach"}
	wantStatus := []model.Status{model.StatusGreen, model.StatusYellow, model.StatusRed, model.StatusGray}
	wantFill := []model.RGB{
		{R: 34, G: 139, B: 34},
		{R: 255, G: 165, B: 0},
		{R: 220, G: 20, B: 60},
		{R: 128, G: 128, B: 128},
	}

	if len(rep.Table.Rows) != len(wantNames) {
		t.Fatalf("rows=%d, want %d", len(rep.Table.Rows), len(wantNames))
	}
	for i, row := range rep.Table.Rows {
		if len(row.Cells) != 6 {
			t.Fatalf("row %d cells=%d", i, len(row.Cells))
		}
		if row.Cells[1].Text != wantNames[i] {
			t.Fatalf("row %d name=%q, want %q", i, row.Cells[1].Text, wantNames[i])
		}
		if row.Status != wantStatus[i] || row.Cells[5].Text != string(wantStatus[i]) {
			t.Fatalf("row %d status=%s/%q, want %s", i, row.Status, row.Cells[5].Text, wantStatus[i])
		}
		status := row.Cells[5]
		if status.Fill == nil || *status.Fill != wantFill[i] {
			t.Fatalf("row %d fill=%v, want %v", i, status.Fill, wantFill[i])
		}
		if !status.Style.Bold || status.Style.Color != colorTextLight {
			t.Fatalf("row %d status style=%+v", i, status.Style)
		}
		for j := 0; j < 5; j++ {
			c := row.Cells[j]
			if c.Fill != nil || c.Style.Color != colorTextDark || c.Style.SizePt >= status.Style.SizePt {
				t.Fatalf("row %d cell %d style=%+v fill=%v", i, j, c.Style, c.Fill)
			}
		}
	}

	first := rep.Table.Rows[0].Cells
	if first[2].Text != "500" || first[3].Text != "520" || first[4].Text != "HigherIsBetter" {
		t.Fatalf("unexpected value cells: %+v", first)
	}
	last := rep.Table.Rows[3].Cells
	if last[2].Text != "N/A" || last[3].Text != "N/A" {
		t.Fatalf("absent values rendered as %q/%q", last[2].Text, last[3].Text)
	}
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	records := sampleRecords()

	a, err := r.Render("Acme", records)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := r.Render("Acme", records)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("reports differ between identical calls")
	}
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	before := sampleRecords()
	if _, err := NewRenderer().Render("Acme", records); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !reflect.DeepEqual(records, before) {
		t.Fatalf("input records mutated")
	}
}

func TestRender_ClassifiesEveryRowAtRenderTime(t *testing.T) {
	t.Parallel()

	calls := 0
	spy := func(actual, benchmark *float64, d model.Direction) model.Status {
		calls++
		return model.StatusRed
	}

	rep, err := NewRenderer(WithClassifier(spy)).Render("Acme", sampleRecords())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if calls != 4 {
		t.Fatalf("classifier calls=%d, want 4", calls)
	}
	for i, row := range rep.Table.Rows {
		if row.Status != model.StatusRed {
			t.Fatalf("row %d status=%s, want Red", i, row.Status)
		}
	}
}

func TestRender_RejectsRecordWithoutRequiredText(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	records[2].KPIName = ""

	_, err := NewRenderer().Render("Acme", records)
	if !errors.Is(err, model.ErrMissingKPIName) {
		t.Fatalf("expected ErrMissingKPIName, got %v", err)
	}
	var recErr *RecordError
	if !errors.As(err, &recErr) || recErr.Index != 2 {
		t.Fatalf("expected RecordError at index 2, got %v", err)
	}

	records = sampleRecords()
	records[0].CampaignType = " "
	if _, err := NewRenderer().Render("Acme", records); !errors.Is(err, model.ErrMissingCampaignType) {
		t.Fatalf("expected ErrMissingCampaignType, got %v", err)
	}
}

func TestRender_CustomPalette(t *testing.T) {
	t.Parallel()

	blue := model.RGB{R: 0, G: 0, B: 255}
	p := Palette{model.StatusGreen: blue}
	r := NewRenderer(WithPalette(p))
	p[model.StatusGreen] = model.RGB{}

	rep, err := r.Render("Acme", sampleRecords()[:1])
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := *rep.Table.Rows[0].Cells[5].Fill; got != blue {
		t.Fatalf("fill=%v, want %v", got, blue)
	}
	if got := p.Color(model.StatusYellow); got != DefaultPalette[model.StatusGray] {
		t.Fatalf("fallback color=%v", got)
	}
}

func TestReportSummary(t *testing.T) {
	t.Parallel()

	rep, err := NewRenderer().Render("Acme", sampleRecords())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := model.StatusSummary{Green: 1, Yellow: 1, Red: 1, Gray: 1}
	if got := rep.Summary(); got != want {
		t.Fatalf("Summary()=%+v, want %+v", got, want)
	}
}
