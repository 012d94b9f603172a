// Package metrics provides Prometheus instrumentation for the resale-guard
// bot. It exposes counters for moderation verdicts, membership events and
// platform call failures, plus a histogram for policy evaluation latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VerdictsTotal counts moderation verdicts, labeled by outcome:
	// "allow", "missing_hashtag", "price_too_low", "cooldown".
	VerdictsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resaleguard_verdicts_total",
		Help: "Total number of moderation verdicts by outcome",
	}, []string{"outcome"})

	// MemberJoinsTotal counts new (non-bot) members restricted on join.
	MemberJoinsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resaleguard_member_joins_total",
		Help: "Total number of new members gated on join",
	})

	// AcknowledgementsTotal counts rules acknowledgements that lifted a
	// restriction.
	AcknowledgementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resaleguard_acknowledgements_total",
		Help: "Total number of rules acknowledgements",
	})

	// PlatformErrorsTotal counts failed chat-platform calls, labeled by
	// operation: "send", "delete", "restrict", "role", "edit".
	PlatformErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resaleguard_platform_errors_total",
		Help: "Total number of failed chat platform calls",
	}, []string{"op"})

	// EvaluateLatency records policy evaluation latency in seconds.
	EvaluateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resaleguard_evaluate_latency_seconds",
		Help:    "Moderation policy evaluation latency in seconds",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	})
)

func init() {
	prometheus.MustRegister(
		VerdictsTotal,
		MemberJoinsTotal,
		AcknowledgementsTotal,
		PlatformErrorsTotal,
		EvaluateLatency,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
