// Package metrics 定义 Prometheus 指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"kpidash/internal/model"
)

var (
	statusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kpidash",
		Name:      "status_total",
		Help:      "KPI rows classified per status in rendered reports and previews.",
	}, []string{"status"})

	importRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kpidash",
		Name:      "import_rows_total",
		Help:      "Uploaded rows by outcome (accepted / dropped).",
	}, []string{"outcome"})

	importFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kpidash",
		Name:      "import_failures_total",
		Help:      "Uploads rejected (missing columns, invalid values, unreadable files).",
	})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kpidash",
		Name:      "exports_total",
		Help:      "Documents serialized per format.",
	}, []string{"format"})

	exportBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kpidash",
		Name:      "export_bytes",
		Help:      "Size of serialized documents.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"format"})
)

// ObserveSummary 记录一次状态分布
func ObserveSummary(s model.StatusSummary) {
	for _, st := range model.Statuses {
		if n := s.Count(st); n > 0 {
			statusTotal.WithLabelValues(string(st)).Add(float64(n))
		}
	}
}

// ObserveImport 记录一次成功导入
func ObserveImport(accepted, dropped int) {
	importRowsTotal.WithLabelValues("accepted").Add(float64(accepted))
	importRowsTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// ObserveImportFailure 记录一次失败导入
func ObserveImportFailure() {
	importFailuresTotal.Inc()
}

// ObserveExport 记录一次导出
func ObserveExport(format string, size int) {
	exportsTotal.WithLabelValues(format).Inc()
	exportBytes.WithLabelValues(format).Observe(float64(size))
}
