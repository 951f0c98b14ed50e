package parser

import (
	"errors"
	"reflect"
	"testing"

	"kpidash/internal/model"
)

var fullHeader = []string{"Campaign Type", "KPI Name", "Benchmark", "Actual", "Direction"}

func TestBuildRecords_MissingColumns(t *testing.T) {
	t.Parallel()

	_, err := BuildRecords([]string{"Campaign Type", "kpi name", "Benchmark", "Actual "}, nil, 2)

	var mcErr *MissingColumnsError
	if !errors.As(err, &mcErr) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if want := []string{"KPI Name", "Actual", "Direction"}; !reflect.DeepEqual(mcErr.Missing, want) {
		t.Fatalf("missing=%v, want %v", mcErr.Missing, want)
	}
	if !reflect.DeepEqual(mcErr.Required, model.RequiredColumns) {
		t.Fatalf("required=%v", mcErr.Required)
	}
	want := "missing required columns: KPI Name, Actual, Direction. Expected: Campaign Type, KPI Name, Benchmark, Actual, Direction"
	if err.Error() != want {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestBuildRecords_DropsRowsWithoutRequiredText(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Events", "Leads", "100", "95", "HigherIsBetter"},
		{"", "Orphan KPI", "1", "1", "HigherIsBetter"},
		{"", "", "", "", ""},
		{"Social", "", "1", "1", "LowerIsBetter"},
		{"Social", "CPC", "2", "", "LowerIsBetter"},
		{"Other", "Custom"},
	}

	res, err := BuildRecords(fullHeader, rows, 2)
	if err != nil {
		t.Fatalf("BuildRecords failed: %v", err)
	}
	if res.TotalRows != 5 || res.Dropped != 2 {
		t.Fatalf("total=%d dropped=%d, want 5/2", res.TotalRows, res.Dropped)
	}
	if len(res.Records) != 3 {
		t.Fatalf("records=%d, want 3", len(res.Records))
	}

	first := res.Records[0]
	if first.CampaignType != "Events" || first.KPIName != "Leads" || *first.Benchmark != 100 || *first.Actual != 95 || first.Direction != model.HigherIsBetter {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if res.Records[1].KPIName != "CPC" || res.Records[1].Actual != nil {
		t.Fatalf("expected absent actual, got %+v", res.Records[1])
	}
	last := res.Records[2]
	if last.KPIName != "Custom" || last.Benchmark != nil || last.Actual != nil || last.Direction != "" {
		t.Fatalf("short row not padded as absent: %+v", last)
	}
}

func TestBuildRecords_ColumnOrderAndExtrasIgnored(t *testing.T) {
	t.Parallel()

	header := []string{"Notes", "Direction", "Actual", "Benchmark", "KPI Name", "Campaign Type"}
	rows := [][]string{{"x", "LowerIsBetter", "3", "4", "CPA", "Commercial"}}

	res, err := BuildRecords(header, rows, 2)
	if err != nil {
		t.Fatalf("BuildRecords failed: %v", err)
	}
	got := res.Records[0]
	if got.CampaignType != "Commercial" || got.KPIName != "CPA" || *got.Benchmark != 4 || *got.Actual != 3 || got.Direction != model.LowerIsBetter {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestBuildRecords_InvalidNumber(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Events", "Leads", "100", "95", "HigherIsBetter"},
		{"Events", "Signups", "lots", "95", "HigherIsBetter"},
	}
	_, err := BuildRecords(fullHeader, rows, 2)

	var ivErr *InvalidValueError
	if !errors.As(err, &ivErr) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if ivErr.Row != 3 || ivErr.Column != "Benchmark" || ivErr.Value != "lots" {
		t.Fatalf("unexpected error detail: %+v", ivErr)
	}
}

func TestBuildRecords_HeaderOnly(t *testing.T) {
	t.Parallel()

	res, err := BuildRecords(fullHeader, nil, 2)
	if err != nil {
		t.Fatalf("BuildRecords failed: %v", err)
	}
	if len(res.Records) != 0 || res.TotalRows != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
