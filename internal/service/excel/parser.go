package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"kpidash/internal/parser"
)

// SheetInfo 工作表信息
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// Parser Excel 上传解析器
type Parser struct {
	file   *excelize.File
	fileID string
}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{
		fileID: uuid.New().String(),
	}
}

// LoadFile 加载Excel文件
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// Close 释放工作簿
func (p *Parser) Close() error {
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}

// GetFileID 获取文件ID
func (p *Parser) GetFileID() string {
	return p.fileID
}

// GetSheets 获取工作表列表
func (p *Parser) GetSheets() ([]SheetInfo, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	result := make([]SheetInfo, 0, len(sheets))

	for _, name := range sheets {
		rows, err := p.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, SheetInfo{
			Name:     name,
			RowCount: len(rows),
		})
	}

	return result, nil
}

// Parse 解析 KPI 数据；sheet 为空时读取第一个工作表
func (p *Parser) Parse(sheet string) (string, *parser.Result, error) {
	if p.file == nil {
		return "", nil, errors.New("no file loaded")
	}

	if sheet == "" {
		sheets := p.file.GetSheetList()
		if len(sheets) == 0 {
			return "", nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// 读取原始值，避免单元格数字格式（百分比、千分位）影响解析
	rows, err := p.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return sheet, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	result, err := parser.BuildRecords(rows[0], rows[1:], 2)
	if err != nil {
		return sheet, nil, err
	}
	return sheet, result, nil
}
