// Package exporter 负责把渲染好的报告序列化为可下载的文档（xlsx / pdf / md）。
package exporter

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"kpidash/internal/metrics"
	"kpidash/internal/model"
	"kpidash/internal/service/excel"
	"kpidash/internal/service/mdreport"
	"kpidash/internal/service/pdf"
)

// ErrUnknownFormat 未注册的导出格式
var ErrUnknownFormat = errors.New("unknown export format")

// FilenamePrefix 导出文件名前缀
const FilenamePrefix = "Marketing_KPI_Dashboard_"

const (
	FormatXLSX     = "xlsx"
	FormatPDF      = "pdf"
	FormatMarkdown = "md"
)

// Serializer 报告序列化器
type Serializer interface {
	Write(w io.Writer, rep *model.Report) error
}

// Format 导出格式描述
type Format struct {
	Name        string
	Extension   string
	ContentType string
	Serializer  Serializer
}

// Registry 导出格式注册表
type Registry struct {
	formats map[string]Format
	order   []string
}

// NewRegistry 创建包含默认格式的注册表
func NewRegistry() *Registry {
	r := &Registry{formats: make(map[string]Format)}
	r.Register(Format{
		Name:        FormatXLSX,
		Extension:   "xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Serializer:  excel.NewExporter(),
	})
	r.Register(Format{
		Name:        FormatPDF,
		Extension:   "pdf",
		ContentType: "application/pdf",
		Serializer:  pdf.NewWriter(),
	})
	r.Register(Format{
		Name:        FormatMarkdown,
		Extension:   "md",
		ContentType: "text/markdown; charset=utf-8",
		Serializer:  mdreport.NewWriter(),
	})
	return r
}

// Register 注册（或替换）一种格式
func (r *Registry) Register(f Format) {
	key := normalizeFormat(f.Name)
	if _, ok := r.formats[key]; !ok {
		r.order = append(r.order, key)
	}
	r.formats[key] = f
}

// Lookup 查找格式，大小写与前导点均不敏感
func (r *Registry) Lookup(name string) (Format, error) {
	key := normalizeFormat(name)
	if key == "markdown" {
		key = FormatMarkdown
	}
	f, ok := r.formats[key]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Names 已注册格式（按注册顺序）
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// ExportOptions 导出选项
type ExportOptions struct {
	Format   string
	Company  string
	Progress func(ProgressEvent)
}

// Result 导出结果
type Result struct {
	Filename    string
	ContentType string
	Format      string
	Data        []byte
}

// DataURI 以 base64 data URI 表示导出内容
func (r *Result) DataURI() string {
	return DataURI(r.ContentType, r.Data)
}

// Export 序列化报告
func (r *Registry) Export(ctx context.Context, rep *model.Report, opts ExportOptions) (*Result, error) {
	if rep == nil {
		return nil, errors.New("report is nil")
	}
	reportProgress(opts.Progress, 5, "Preparing export")

	f, err := r.Lookup(opts.Format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reportProgress(opts.Progress, 20, "Rendering "+strings.ToUpper(f.Name))
	var buf bytes.Buffer
	if err := f.Serializer.Write(&buf, rep); err != nil {
		return nil, fmt.Errorf("write %s: %w", f.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reportProgress(opts.Progress, 90, "Packaging file")
	company := opts.Company
	if company == "" {
		company = rep.Title.CompanyName
	}
	res := &Result{
		Filename:    Filename(company, f.Extension),
		ContentType: f.ContentType,
		Format:      f.Name,
		Data:        buf.Bytes(),
	}
	metrics.ObserveExport(f.Name, len(res.Data))

	reportProgress(opts.Progress, 100, "Done")
	return res, nil
}

// Filename 生成导出文件名：空格替换为下划线
func Filename(company, ext string) string {
	name := FilenamePrefix + strings.ReplaceAll(company, " ", "_")
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// DataURI 构造 data URI
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func normalizeFormat(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
