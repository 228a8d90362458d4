// Package metrics defines and registers all custom Prometheus metrics for
// the task management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Collectors register themselves with the default Prometheus registry at
// package init; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskapi"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful account creations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh attempts.
// Label:
//   - result: "success", "invalid" or "revoked"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token rotations, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium" or "high"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TasksCompletedTotal counts tasks transitioned into the completed status.
var TasksCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks marked completed.",
	},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityRecordedTotal counts audit entries written by the workers.
// Label:
//   - action: "created", "updated", "completed" or "deleted"
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity entries persisted, by action.",
	},
	[]string{"action"},
)

// ActivityDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var ActivityDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the API rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)
