package report

import (
	"fmt"

	"kpidash/internal/model"
	"kpidash/internal/service/calculator"
	"kpidash/internal/util"
)

const (
	headingFormat  = "Marketing KPI Dashboard - %s Benchmarks"
	SubheadingText = "Status view across Campaign Types and KPIs"
	CaptionText    = "Dashboard Status"
)

// 字号（pt）
const (
	headingSize    = 44
	subheadingSize = 24
	captionSize    = 32
	headerSize     = 12
	statusSize     = 12
	bodySize       = 10
)

// Columns 报告表格列，宽度按 KPI 名称最宽、活动类型与状态较窄分配
var Columns = []model.Column{
	{Name: model.ColumnCampaignType, WidthIn: 1.5},
	{Name: model.ColumnKPIName, WidthIn: 2.5},
	{Name: model.ColumnBenchmark, WidthIn: 1.2},
	{Name: model.ColumnActual, WidthIn: 1.2},
	{Name: model.ColumnDirection, WidthIn: 1.5},
	{Name: model.ColumnStatus, WidthIn: 1.1},
}

// Classifier 状态计算函数
type Classifier func(actual, benchmark *float64, direction model.Direction) model.Status

// RecordError 渲染时记录校验失败
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index+1, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Renderer 报告渲染器：无状态，可重入
type Renderer struct {
	classify Classifier
	palette  Palette
}

// Option 渲染器选项
type Option func(*Renderer)

// WithClassifier 替换状态计算函数
func WithClassifier(c Classifier) Option {
	return func(r *Renderer) {
		if c != nil {
			r.classify = c
		}
	}
}

// WithPalette 替换状态配色
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		if len(p) > 0 {
			r.palette = p.clone()
		}
	}
}

// NewRenderer 创建渲染器
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		classify: calculator.Classify,
		palette:  DefaultPalette.clone(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Palette 返回渲染器使用的配色副本
func (r *Renderer) Palette() Palette {
	return r.palette.clone()
}

// Heading 报告主标题
func Heading(companyName string) string {
	return fmt.Sprintf(headingFormat, companyName)
}

// Render 生成报告文档
//
// 行顺序与输入一致；状态在渲染时逐行重新计算。缺少活动类型或 KPI 名称的记录直接报错。
func (r *Renderer) Render(companyName string, records []model.KPIRecord) (*model.Report, error) {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
	}

	rep := &model.Report{
		Title: model.TitleSection{
			CompanyName: companyName,
			Heading: model.TextBlock{
				Text:  Heading(companyName),
				Style: model.TextStyle{SizePt: headingSize, Color: colorTextDark},
			},
			Subheading: model.TextBlock{
				Text:  SubheadingText,
				Style: model.TextStyle{SizePt: subheadingSize, Color: colorTextMuted},
			},
		},
		Table: model.TableSection{
			Caption: model.TextBlock{
				Text:  CaptionText,
				Style: model.TextStyle{SizePt: captionSize, Color: colorTextDark},
			},
			Columns: append([]model.Column(nil), Columns...),
			Header:  r.headerCells(),
			Rows:    make([]model.Row, 0, len(records)),
		},
	}

	for _, rec := range records {
		rep.Table.Rows = append(rep.Table.Rows, r.row(rec))
	}

	return rep, nil
}

func (r *Renderer) headerCells() []model.Cell {
	cells := make([]model.Cell, 0, len(Columns))
	for _, col := range Columns {
		fill := colorHeader
		cells = append(cells, model.Cell{
			Text:  col.Name,
			Style: model.TextStyle{SizePt: headerSize, Bold: true, Color: colorTextLight},
			Fill:  &fill,
		})
	}
	return cells
}

func (r *Renderer) row(rec model.KPIRecord) model.Row {
	status := r.classify(rec.Actual, rec.Benchmark, rec.Direction)
	fill := r.palette.Color(status)

	body := model.TextStyle{SizePt: bodySize, Color: colorTextDark}
	return model.Row{
		Status: status,
		Cells: []model.Cell{
			{Text: rec.CampaignType, Style: body},
			{Text: rec.KPIName, Style: body},
			{Text: util.FormatOptional(rec.Benchmark), Style: body},
			{Text: util.FormatOptional(rec.Actual), Style: body},
			{Text: string(rec.Direction), Style: body},
			{
				Text:  string(status),
				Style: model.TextStyle{SizePt: statusSize, Bold: true, Color: colorTextLight},
				Fill:  &fill,
			},
		},
	}
}
