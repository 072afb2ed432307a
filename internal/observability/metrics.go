package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsSent counts contact-message notification attempts by
	// channel ("email", "telegram") and outcome ("ok", "error").
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrine_notifications_sent_total",
		Help: "Total number of contact notification attempts by channel and outcome",
	}, []string{"channel", "outcome"})

	// AnalyticsFactsRecorded counts stored analytics facts by kind
	// ("pageview", "event", "visitor", "session").
	AnalyticsFactsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrine_analytics_facts_total",
		Help: "Total number of analytics facts recorded by kind",
	}, []string{"kind"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrine_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
