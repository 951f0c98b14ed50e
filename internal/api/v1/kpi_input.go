package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"kpidash/internal/model"
)

// kpiInput 手动录入的一行
//
// 数值字段缺省为 0（与录入表单一致），显式 null 表示缺失。
type kpiInput struct {
	CampaignType string          `json:"campaignType"`
	KPIName      string          `json:"kpiName"`
	Benchmark    json.RawMessage `json:"benchmark"`
	Actual       json.RawMessage `json:"actual"`
	Direction    string          `json:"direction"`
}

func (in kpiInput) toRecord() (model.KPIRecord, error) {
	benchmark, err := parseOptionalNumber("benchmark", in.Benchmark)
	if err != nil {
		return model.KPIRecord{}, err
	}
	actual, err := parseOptionalNumber("actual", in.Actual)
	if err != nil {
		return model.KPIRecord{}, err
	}
	return model.KPIRecord{
		CampaignType: strings.TrimSpace(in.CampaignType),
		KPIName:      strings.TrimSpace(in.KPIName),
		Benchmark:    benchmark,
		Actual:       actual,
		Direction:    model.Direction(strings.TrimSpace(in.Direction)),
	}, nil
}

func parseOptionalNumber(field string, raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return model.Float(0), nil
	}
	if bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%s must be a number or null", field)
	}
	return &v, nil
}
