package model

// Status 红黄绿灯状态
type Status string

const (
	StatusGreen  Status = "Green"
	StatusYellow Status = "Yellow"
	StatusRed    Status = "Red"
	StatusGray   Status = "Gray"
)

// Statuses 所有状态，按展示顺序
var Statuses = []Status{StatusGreen, StatusYellow, StatusRed, StatusGray}

// StatusSummary 各状态数量汇总
type StatusSummary struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
	Gray   int `json:"gray"`
}

// Add 累加一个状态
func (s *StatusSummary) Add(status Status) {
	switch status {
	case StatusGreen:
		s.Green++
	case StatusYellow:
		s.Yellow++
	case StatusRed:
		s.Red++
	default:
		s.Gray++
	}
}

// Count 返回指定状态的数量
func (s StatusSummary) Count(status Status) int {
	switch status {
	case StatusGreen:
		return s.Green
	case StatusYellow:
		return s.Yellow
	case StatusRed:
		return s.Red
	default:
		return s.Gray
	}
}

// Total 总数
func (s StatusSummary) Total() int {
	return s.Green + s.Yellow + s.Red + s.Gray
}
