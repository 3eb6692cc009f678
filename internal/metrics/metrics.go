// Package metrics defines all custom Prometheus metrics for the storefront
// client. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// CommandsTotal counts inventory commands by outcome.
// Labels:
//   - command: "purchase", "restock", "create", "update", "delete"
//   - outcome: "ok", "rejected" (local gate/validation), "failed" (remote)
var CommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Total number of inventory commands issued, by outcome.",
	},
	[]string{"command", "outcome"},
)

// FetchDuration measures catalog fetches end-to-end, fallback included.
// Label:
//   - mode: "list" (unfiltered) or "search" (filtered)
var FetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of catalog fetches, by request mode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"mode"},
)

// FetchFallbackTotal counts filtered fetches downgraded to the public
// listing after a forbidden response.
var FetchFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_fallback_total",
		Help:      "Total number of filtered fetches that fell back to the unfiltered listing.",
	},
)

// AuthFailuresTotal counts rejected login and registration attempts.
// Label:
//   - operation: "login" or "register"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication operations rejected by the remote service.",
	},
	[]string{"operation"},
)
