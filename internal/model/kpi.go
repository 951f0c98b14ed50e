package model

import (
	"errors"
	"math"
	"strings"
)

// Direction KPI 方向（越高越好 / 越低越好）
//
// 上传文件中的方向是开放字符串，未识别的取值原样保留，分级时视为 Gray。
type Direction string

const (
	HigherIsBetter Direction = "HigherIsBetter"
	LowerIsBetter  Direction = "LowerIsBetter"
)

// Directions 手工录入可选方向
var Directions = []Direction{HigherIsBetter, LowerIsBetter}

// Known 是否为可识别的方向
func (d Direction) Known() bool {
	return d == HigherIsBetter || d == LowerIsBetter
}

// CampaignTypes 手工录入时提供的默认活动类型（开放集合，不做校验）
var CampaignTypes = []string{"Events", "Digital/Search", "Influencer", "Commercial", "Social", "Other"}

// 必填列名（大小写、空格敏感）
const (
	ColumnCampaignType = "Campaign Type"
	ColumnKPIName      = "KPI Name"
	ColumnBenchmark    = "Benchmark"
	ColumnActual       = "Actual"
	ColumnDirection    = "Direction"
	ColumnStatus       = "Status"
)

// RequiredColumns 上传表格必须包含的列，顺序即报告列顺序
var RequiredColumns = []string{
	ColumnCampaignType,
	ColumnKPIName,
	ColumnBenchmark,
	ColumnActual,
	ColumnDirection,
}

var (
	ErrMissingCampaignType = errors.New("campaign type is required")
	ErrMissingKPIName      = errors.New("KPI name is required")
)

// KPIRecord 一行 KPI 数据
//
// Benchmark / Actual 为 nil 表示缺失，缺失是合法状态（分级为 Gray）。
type KPIRecord struct {
	CampaignType string    `json:"campaignType"`
	KPIName      string    `json:"kpiName"`
	Benchmark    *float64  `json:"benchmark"`
	Actual       *float64  `json:"actual"`
	Direction    Direction `json:"direction"`
}

// Validate 校验报告所需的文本字段
func (r KPIRecord) Validate() error {
	if strings.TrimSpace(r.CampaignType) == "" {
		return ErrMissingCampaignType
	}
	if strings.TrimSpace(r.KPIName) == "" {
		return ErrMissingKPIName
	}
	return nil
}

// Float 返回指向 v 的指针，便于构造记录
func Float(v float64) *float64 {
	return &v
}

// IsAbsent 判断数值是否缺失（nil 或 NaN）
func IsAbsent(v *float64) bool {
	return v == nil || math.IsNaN(*v)
}
