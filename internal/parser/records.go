package parser

import (
	"strings"

	"kpidash/internal/model"
)

// BuildRecords 将表头 + 数据行转换为 KPIRecord
//
// 必填列缺失时整体失败，不做部分处理；缺少活动类型或 KPI 名称的行被丢弃并计数。
// firstRow 为第一条数据行在源文件中的行号，用于错误提示。
func BuildRecords(header []string, rows [][]string, firstRow int) (*Result, error) {
	colIndex := ColumnIndex(header)

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{
			Missing:  missing,
			Required: append([]string(nil), model.RequiredColumns...),
		}
	}

	result := &Result{Records: make([]model.KPIRecord, 0, len(rows))}

	for i, row := range rows {
		if IsBlankRow(row) {
			continue
		}
		result.TotalRows++

		rec, keep, err := buildRow(row, colIndex, firstRow+i)
		if err != nil {
			return nil, err
		}
		if !keep {
			result.Dropped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// buildRow 解析单行数据
func buildRow(row []string, colIndex map[string]int, rowNum int) (model.KPIRecord, bool, error) {
	getValue := func(field string) string {
		if idx, ok := colIndex[field]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	rec := model.KPIRecord{
		CampaignType: getValue(model.ColumnCampaignType),
		KPIName:      getValue(model.ColumnKPIName),
		Direction:    model.Direction(getValue(model.ColumnDirection)),
	}
	if rec.Validate() != nil {
		return model.KPIRecord{}, false, nil
	}

	for _, col := range []string{model.ColumnBenchmark, model.ColumnActual} {
		raw := getValue(col)
		v, ok := ParseNumber(raw)
		if !ok {
			return model.KPIRecord{}, false, &InvalidValueError{Row: rowNum, Column: col, Value: raw}
		}
		if col == model.ColumnBenchmark {
			rec.Benchmark = v
		} else {
			rec.Actual = v
		}
	}

	return rec, true, nil
}
