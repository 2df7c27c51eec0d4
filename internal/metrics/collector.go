package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Normalizer metrics
	LinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suriwatch_lines_total",
			Help: "Log lines seen by each component, by normalization result",
		},
		[]string{"component", "result"},
	)

	// Index metrics
	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suriwatch_index_builds_total",
			Help: "Index builds by result",
		},
		[]string{"result"},
	)
	IndexAlerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suriwatch_index_alerts",
			Help: "Alerts in the last built index snapshot",
		},
	)

	// Cache metrics
	CacheRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suriwatch_cache_refreshes_total",
			Help: "Serving cache reloads by result",
		},
		[]string{"result"},
	)
	CacheAlerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suriwatch_cache_alerts",
			Help: "Alerts currently held by the serving cache",
		},
	)

	// Monitor metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suriwatch_notifications_total",
			Help: "Live monitor notification decisions",
		},
		[]string{"result"},
	)
	MonitorReadErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suriwatch_monitor_read_errors_total",
			Help: "Read errors while following the sensor log",
		},
	)
)

// Result label values.
const (
	ResultOK         = "ok"
	ResultError      = "error"
	ResultSent       = "sent"
	ResultSuppressed = "suppressed"
	ResultFiltered   = "filtered"
	ResultFailed     = "failed"
)
