package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute 运行根命令并返回标准输出
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	if cmd.Use != "kpidash" || cmd.Short == "" || cmd.Version == "" {
		t.Fatalf("unexpected root command: %+v", cmd)
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "render", "classify", "version"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}

	if f := cmd.PersistentFlags().Lookup("verbose"); f == nil || f.Shorthand != "v" {
		t.Errorf("expected verbose flag with shorthand v")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "kpidash version ") || !strings.Contains(out, "commit:") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestClassifyCmd(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--actual", "100", "--benchmark", "100"}, "Green"},
		{[]string{"--actual", "95", "--benchmark", "100"}, "Yellow"},
		{[]string{"--actual", "50", "--benchmark", "100"}, "Red"},
		{[]string{"--actual", "105", "--benchmark", "100", "--direction", "LowerIsBetter"}, "Yellow"},
		{[]string{"--benchmark", "100"}, "Gray"},
		{[]string{"--actual", "1", "--benchmark", "1", "--direction", "Unknown"}, "Gray"},
	}
	for _, c := range cases {
		out, err := execute(t, append([]string{"classify"}, c.args...)...)
		if err != nil {
			t.Fatalf("classify %v: %v", c.args, err)
		}
		if got := strings.TrimSpace(out); got != c.want {
			t.Errorf("classify %v = %q, want %q", c.args, got, c.want)
		}
	}
}

func TestClassifyCmdRejectsText(t *testing.T) {
	if _, err := execute(t, "classify", "--actual", "lots", "--benchmark", "1"); err == nil {
		t.Fatalf("expected error for non-numeric --actual")
	}
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kpis.csv")
	csv := "Campaign Type,KPI Name,Benchmark,Actual,Direction\n" +
		"Social,CTR,2,2.5,HigherIsBetter\n" +
		"Events,CPA,10,,LowerIsBetter\n"
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "render", "--input", input, "--company", "Acme Corp", "--format", "xlsx,pdf,md", "--out", outDir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{"xlsx", "pdf", "md"} {
		p := filepath.Join(outDir, "Marketing_KPI_Dashboard_Acme_Corp."+ext)
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", p)
		}
		if !strings.Contains(out, p) {
			t.Errorf("output does not list %s", p)
		}
	}

	md, _ := os.ReadFile(filepath.Join(outDir, "Marketing_KPI_Dashboard_Acme_Corp.md"))
	if !strings.Contains(string(md), "Marketing KPI Dashboard - Acme Corp Benchmarks") {
		t.Fatalf("markdown heading missing:\n%s", md)
	}
}

func TestRenderCmdErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, "render"); err == nil {
		t.Fatalf("expected error without --input")
	}

	input := filepath.Join(dir, "kpis.csv")
	_ = os.WriteFile(input, []byte("Campaign Type,KPI Name,Benchmark,Actual,Direction\nSocial,CTR,1,1,HigherIsBetter\n"), 0o644)
	if _, err := execute(t, "render", "--input", input, "--format", "docx", "--out", dir); err == nil {
		t.Fatalf("expected error for unknown format")
	}

	bad := filepath.Join(dir, "bad.csv")
	_ = os.WriteFile(bad, []byte("KPI Name\nCTR\n"), 0o644)
	_, err := execute(t, "render", "--input", bad, "--out", dir)
	if err == nil || !strings.Contains(err.Error(), "missing required columns") {
		t.Fatalf("expected missing columns error, got %v", err)
	}
}
