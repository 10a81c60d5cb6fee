package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "missions_created_total", Help: "Missions placed by customers"})
	MissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "missions_accepted_total", Help: "Missions accepted by drivers"})
	MissionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "missions_completed_total", Help: "Missions delivered"})
	MissionsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "missions_cancelled_total", Help: "Pending missions cancelled by customers"})
	AcceptConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "accept_conflicts_total", Help: "Accept attempts that lost the first-writer race"})

	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "poll_cycles_total", Help: "Completed synchronizer refresh cycles"})
	PollsCollapsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftdrop", Name: "polls_collapsed_total", Help: "Refresh requests collapsed into an in-flight poll"})

	DriversOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "swiftdrop", Name: "drivers_online", Help: "Drivers currently online"})
	PlatformRevenue = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "swiftdrop", Name: "platform_revenue_minor_units", Help: "Revenue summed over completed missions, as of the last sync"})
	ActiveMissions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "swiftdrop", Name: "missions_active", Help: "Missions pending or in progress, as of the last sync"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "swiftdrop", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "swiftdrop",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
