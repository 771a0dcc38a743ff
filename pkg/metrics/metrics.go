// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集应用和系统指标.
//
// Example:
//
//	import "github.com/yeisme/artvault/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// 记录指标
//	metrics.SubmissionsReceived.WithLabelValues("image").Inc()
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 自动注册pprof端点

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/artvault/pkg/configs"
)

// 全局指标变量.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// SubmissionsReceived 收到的投稿计数，按媒体类型区分.
	SubmissionsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_received_total",
			Help: "Total number of accepted submissions",
		},
		[]string{"media_type"},
	)

	// SubmissionsRejectedInput 校验失败的投稿计数，按失败原因区分.
	SubmissionsRejectedInput = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_invalid_total",
			Help: "Total number of submissions rejected by validation",
		},
		[]string{"reason"},
	)

	// ModerationDecisions 审核决定计数，按结果区分.
	ModerationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Total number of moderation decisions",
		},
		[]string{"decision"},
	)

	// PendingSubmissions 待审核队列长度.
	PendingSubmissions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_submissions",
			Help: "Number of submissions currently pending moderation",
		},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
)

// InitMetrics 初始化Metrics.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	// 注册标准收集器
	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// 注册自定义指标
	registry.MustRegister(
		RequestCounter,
		RequestDuration,
		SubmissionsReceived,
		SubmissionsRejectedInput,
		ModerationDecisions,
		PendingSubmissions,
	)

	return nil
}

// StartMetricsServer 在主引擎上暴露 /metrics（以及可选的 pprof）端点.
func StartMetricsServer(config configs.MetricsConfig, engine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// 如果启用pprof，注册pprof端点
	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}
