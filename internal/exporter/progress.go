package exporter

// ProgressEvent 导出进度事件，经 SSE 推送给前端
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// reportProgress 百分比夹在 [0,100]，progress 为空时忽略
func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	progress(ProgressEvent{Percent: min(max(percent, 0), 100), Stage: stage})
}
