// Package metrics defines all custom Prometheus metrics for the inventory
// auth service. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory_auth"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (credential mismatch, unknown user)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization guard decisions.
// Label:
//   - outcome: "allowed", "unauthenticated", "forbidden", "out_of_scope"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsIssuedTotal counts sessions created by successful logins.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued.",
	},
)

// SessionsRevokedTotal counts explicit revocations (logout, admin).
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions explicitly revoked.",
	},
)

// HashQueueDepth tracks jobs waiting in the password-hashing worker pool.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of jobs pending in the hashing worker pool.",
	},
)

// HashDuration measures a single bcrypt operation from dequeue to completion.
var HashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hash_duration_seconds",
		Help:      "Duration of individual password hash/verify computations.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
