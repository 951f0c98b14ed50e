package calculator

import "kpidash/internal/model"

// 黄灯容差：越高越好时允许低于基准 10%，越低越好时允许高于基准 10%
const (
	higherTolerance = 0.9
	lowerTolerance  = 1.1
)

// Classify 根据实际值、基准值与方向计算状态
//
// 任一数值缺失时为 Gray（优先于其他规则）；方向无法识别时同样为 Gray。
// 容差带按基准值乘法计算，基准为 0 时黄灯区间为空，基准为负时区间方向会翻转。
func Classify(actual, benchmark *float64, direction model.Direction) model.Status {
	if model.IsAbsent(actual) || model.IsAbsent(benchmark) {
		return model.StatusGray
	}
	a, b := *actual, *benchmark

	switch direction {
	case model.HigherIsBetter:
		if a >= b {
			return model.StatusGreen
		}
		if a >= b*higherTolerance {
			return model.StatusYellow
		}
		return model.StatusRed
	case model.LowerIsBetter:
		if a <= b {
			return model.StatusGreen
		}
		if a <= b*lowerTolerance {
			return model.StatusYellow
		}
		return model.StatusRed
	}
	return model.StatusGray
}

// ClassifyRecord 计算单条记录的状态
func ClassifyRecord(r model.KPIRecord) model.Status {
	return Classify(r.Actual, r.Benchmark, r.Direction)
}

// Summarize 统计记录集合的状态分布（每次重新计算，不缓存）
func Summarize(records []model.KPIRecord) model.StatusSummary {
	var s model.StatusSummary
	for _, r := range records {
		s.Add(ClassifyRecord(r))
	}
	return s
}
