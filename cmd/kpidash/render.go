package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"kpidash/internal/exporter"
	"kpidash/internal/importer"
	"kpidash/internal/service/report"
)

type renderOptions struct {
	input   string
	sheet   string
	company string
	formats []string
	outDir  string
}

// NewRenderCmd 创建 render 命令
func NewRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a KPI dashboard report from a spreadsheet",
		Long: `Import KPI rows from an xlsx, csv or yaml file, classify each row and write
one report file per requested format into the output directory.`,
		Example: `  kpidash render --input kpis.xlsx --company "Acme Corp"
  kpidash render --input kpis.csv --format xlsx,pdf,md --out reports/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("company") {
				opts.company = cfg.Report.DefaultCompany
			}
			if len(opts.formats) == 0 {
				opts.formats = []string{cfg.Report.DefaultFormat}
			}
			logger := newLogger(cmd, cmd.ErrOrStderr(), cfg)

			written, err := runRender(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, p := range written {
				logger.Debug("report written", "path", p)
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "KPI file (.xlsx, .xlsm, .csv, .yaml)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().StringVarP(&opts.company, "company", "c", "", "Company name for the report title")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "Output formats: xlsx, pdf, md")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Output directory")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// runRender 导入、渲染，并发写出各格式文件，返回写出的路径（按格式顺序）
func runRender(ctx context.Context, opts *renderOptions) ([]string, error) {
	f, err := os.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	imported, err := importer.NewCoordinator().Import(ctx, importer.ImportOptions{
		Filename: opts.input,
		Reader:   f,
		Sheet:    opts.sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", opts.input, err)
	}

	rep, err := report.NewRenderer().Render(opts.company, imported.Records)
	if err != nil {
		return nil, err
	}

	registry := exporter.NewRegistry()
	formats := make([]string, 0, len(opts.formats))
	for _, name := range opts.formats {
		name = strings.TrimSpace(name)
		if _, err := registry.Lookup(name); err != nil {
			return nil, err
		}
		formats = append(formats, name)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, err
	}

	written := make([]string, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range formats {
		i, name := i, name
		g.Go(func() error {
			res, err := registry.Export(gctx, rep, exporter.ExportOptions{Format: name, Company: opts.company})
			if err != nil {
				return err
			}
			path := filepath.Join(opts.outDir, res.Filename)
			if err := os.WriteFile(path, res.Data, 0o644); err != nil {
				return err
			}
			written[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}
