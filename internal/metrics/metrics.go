package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RequestsConnected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_requests_connected_total",
			Help: "Requests linked to campaign targets",
		},
		[]string{"campaign_id", "primary"},
	)

	RequestEventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_request_events_total",
			Help: "Request events consumed from the queue",
		},
		[]string{"outcome"},
	)

	PageCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_page_cache_lookups_total",
			Help: "Anonymous page cache lookups",
		},
		[]string{"result"},
	)
)
