// Package importer 处理上传的 KPI 数据文件（xlsx / csv / yaml）。
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"kpidash/internal/metrics"
	"kpidash/internal/model"
	"kpidash/internal/parser"
	"kpidash/internal/service/calculator"
	"kpidash/internal/service/excel"
)

// ErrUnsupportedFormat 不支持的文件类型
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Extensions 支持的文件扩展名
var Extensions = []string{".xlsx", ".xlsm", ".csv", ".yaml", ".yml"}

// ImportOptions 导入选项
type ImportOptions struct {
	Filename string
	Reader   io.Reader
	Sheet    string // 仅 xlsx，空则取第一个工作表
	Progress func(ProgressEvent)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string    `json:"type"` // start/parsed/done
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ImportResult 导入结果
type ImportResult struct {
	ID        string              `json:"id"`
	Filename  string              `json:"filename"`
	Sheet     string              `json:"sheet,omitempty"`
	Records   []model.KPIRecord   `json:"records"`
	TotalRows int                 `json:"totalRows"`
	Dropped   int                 `json:"dropped"`
	Summary   model.StatusSummary `json:"summary"`
}

// Coordinator 导入协调器
type Coordinator struct{}

// NewCoordinator 创建导入协调器
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Import 按扩展名选择解析器并解析全部记录
func (c *Coordinator) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	name := filepath.Base(opts.Filename)
	c.sendProgress(opts.Progress, "start", "Reading "+name)

	res, err := c.doImport(ctx, opts)
	if err != nil {
		metrics.ObserveImportFailure()
		return nil, err
	}
	res.ID = uuid.New().String()
	res.Filename = name
	res.Summary = calculator.Summarize(res.Records)

	metrics.ObserveImport(len(res.Records), res.Dropped)
	c.sendProgress(opts.Progress, "done",
		fmt.Sprintf("Imported %d rows (%d dropped)", len(res.Records), res.Dropped))
	return res, nil
}

func (c *Coordinator) doImport(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if opts.Reader == nil {
		return nil, errors.New("no file provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(opts.Filename))
	var (
		sheet  string
		result *parser.Result
		err    error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		sheet, result, err = parseWorkbook(opts.Reader, opts.Sheet)
	case ".csv":
		result, err = parseCSV(opts.Reader)
	case ".yaml", ".yml":
		result, err = parseYAML(opts.Reader)
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, err
	}
	c.sendProgress(opts.Progress, "parsed", fmt.Sprintf("Parsed %d data rows", result.TotalRows))

	return &ImportResult{
		Sheet:     sheet,
		Records:   result.Records,
		TotalRows: result.TotalRows,
		Dropped:   result.Dropped,
	}, nil
}

func parseWorkbook(r io.Reader, sheet string) (string, *parser.Result, error) {
	p := excel.NewParser()
	if err := p.LoadFile(r); err != nil {
		return "", nil, err
	}
	defer p.Close()
	return p.Parse(sheet)
}

// sendProgress 发送进度（回调为空时忽略）
func (c *Coordinator) sendProgress(fn func(ProgressEvent), typ, msg string) {
	if fn == nil {
		return
	}
	fn(ProgressEvent{Type: typ, Message: msg, Timestamp: time.Now()})
}
