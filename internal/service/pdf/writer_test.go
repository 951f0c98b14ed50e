package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"kpidash/internal/model"
	"kpidash/internal/service/report"
)

func records(n int) []model.KPIRecord {
	out := make([]model.KPIRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.KPIRecord{
			CampaignType: "Events",
			KPIName:      fmt.Sprintf("KPI %d", i+1),
			Benchmark:    model.Float(100),
			Actual:       model.Float(float64(80 + i)),
			Direction:    model.HigherIsBetter,
		})
	}
	return out
}

func TestWrite_ProducesPDF(t *testing.T) {
	t.Parallel()

	rep, err := report.NewRenderer().Render("Acme Café", records(4))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := NewWriter().Write(&buf, rep); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestBuild_TitleAndTablePages(t *testing.T) {
	t.Parallel()

	rep, err := report.NewRenderer().Render("Acme", records(3))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	doc, err := NewWriter().Build(rep)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := doc.PageCount(); got != 2 {
		t.Fatalf("PageCount()=%d, want 2", got)
	}
}

func TestBuild_LongTableSpillsOver(t *testing.T) {
	t.Parallel()

	rep, err := report.NewRenderer().Render("Acme", records(60))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	doc, err := NewWriter().Build(rep)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := doc.PageCount(); got < 3 {
		t.Fatalf("PageCount()=%d, want >= 3", got)
	}
}

func TestWrite_FixedCreationDateIsRepeatable(t *testing.T) {
	t.Parallel()

	rep, err := report.NewRenderer().Render("Acme", records(2))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	w := &Writer{CreationDate: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}

	var a, b bytes.Buffer
	if err := w.Write(&a, rep); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(&b, rep); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("outputs differ with fixed creation date")
	}
}
