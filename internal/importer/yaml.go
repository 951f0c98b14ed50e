package importer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"kpidash/internal/parser"
)

// yamlListKeys 顶层为映射时，记录列表所在的键
var yamlListKeys = []string{"kpis", "records"}

// parseYAML 解析记录列表，每项以列名为键：
//
//	- Campaign Type: Social
//	  KPI Name: CTR
//	  Benchmark: 1.2
//	  Actual: 1.5
//	  Direction: HigherIsBetter
func parseYAML(r io.Reader) (*parser.Result, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("yaml file is empty")
		}
		return nil, fmt.Errorf("failed to read yaml: %w", err)
	}

	items, err := yamlItems(doc)
	if err != nil {
		return nil, err
	}

	var header []string
	seen := make(map[string]int)
	maps := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("yaml item %d is not a mapping", i+1)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(header)
				header = append(header, k)
			}
		}
		maps = append(maps, m)
	}

	rows := make([][]string, 0, len(maps))
	for _, m := range maps {
		row := make([]string, len(header))
		for k, v := range m {
			row[seen[k]] = yamlCellText(v)
		}
		rows = append(rows, row)
	}
	return parser.BuildRecords(header, rows, 1)
}

func yamlItems(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range yamlListKeys {
			if list, ok := v[key].([]any); ok {
				return list, nil
			}
		}
	}
	return nil, errors.New("yaml document must be a list of KPI rows")
}

// yamlCellText 将标量转换为单元格文本，交给统一的行解析
func yamlCellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
