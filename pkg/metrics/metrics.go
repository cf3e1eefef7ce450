package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "collabedit", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "collabedit", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DocumentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "collabedit", Name: "documents_created_total", Help: "Number of documents created."},
	)
	EditsRelayed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "collabedit", Name: "edits_relayed_total", Help: "Number of edit messages stamped and rebroadcast."},
	)
	EditorConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "collabedit", Name: "editor_connections", Help: "Currently open editor WebSocket connections."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentsCreated)
	reg.MustRegister(EditsRelayed)
	reg.MustRegister(EditorConnections)
}
