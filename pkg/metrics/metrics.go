// Package metrics 业务指标，通过 /metrics 暴露给 Prometheus
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests 按路由模板与状态码统计请求
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "halaqa",
		Name:      "http_requests_total",
		Help:      "HTTP 请求数",
	}, []string{"method", "route", "status"})

	// HTTPDuration 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "halaqa",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP 请求耗时",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AttendanceToggles 出勤切换结果：committed / rolled_back / rejected
	AttendanceToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "halaqa",
		Name:      "attendance_toggles_total",
		Help:      "出勤切换次数",
	}, []string{"result"})

	// AutoMarked 自动补记的出勤记录数，kind = absent / from_grades
	AutoMarked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "halaqa",
		Name:      "attendance_auto_marked_total",
		Help:      "自动补记的出勤记录数",
	}, []string{"kind"})

	// SweepRuns 定时缺勤任务执行次数
	SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "halaqa",
		Name:      "attendance_sweep_runs_total",
		Help:      "定时缺勤任务执行次数",
	}, []string{"status"})

	// HijriFallbacks 回历主换算失败后改用近似算法的次数
	HijriFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "halaqa",
		Name:      "hijri_fallback_total",
		Help:      "回历换算降级次数",
	})
)

// 切换结果标签
const (
	ToggleCommitted  = "committed"
	ToggleRolledBack = "rolled_back"
	ToggleRejected   = "rejected"
)

// GinMiddleware 记录请求数与耗时，未匹配路由统一记为 unmatched
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
