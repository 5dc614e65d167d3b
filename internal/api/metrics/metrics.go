// Package metrics defines and registers the custom Prometheus metrics of the
// marketplace gateway. It is the single source of truth for metric names,
// labels and help strings. Metrics register with the default registry on
// package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "homeservice"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - route: the guarded route pattern (e.g. "/customer")
//   - decision: "loading", "authorized" or "redirecting"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by route and outcome.",
	},
	[]string{"route", "decision"},
)

// TamperIncidentsTotal counts credentials whose claims disagreed with the
// cached session and triggered a forced logout.
var TamperIncidentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tamper_incidents_total",
		Help:      "Total number of forced logouts caused by token/session disagreement.",
	},
)

// SessionResolutionsTotal counts attempts to resolve a session from a stored
// credential.
// Label:
//   - result: "confirmed" or "unresolved"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session resolutions against the identity backend.",
	},
	[]string{"result"},
)

// ── Reservation metrics ───────────────────────────────────────────────────────

// ReservationUpdatesTotal counts reservation patches.
// Label:
//   - result: "ok", "not_found", "forbidden" or "error"
var ReservationUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_updates_total",
		Help:      "Total number of reservation updates, by result.",
	},
	[]string{"result"},
)

// ReservationsCreatedTotal counts newly booked reservations.
var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations created.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// MarkReadJobsTotal counts mark-all-read jobs handled by the dispatcher.
// Label:
//   - result: "ok", "error" or "dropped"
var MarkReadJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mark_read_jobs_total",
		Help:      "Total number of mark-all-read jobs, by result.",
	},
	[]string{"result"},
)

// MarkReadQueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MarkReadQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mark_read_queue_depth",
		Help:      "Current number of jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// MarkReadDuration measures one backend mark-all-read call.
var MarkReadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mark_read_duration_seconds",
		Help:      "Duration of a mark-all-read call to the notification backend.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageErrorsTotal counts failed client storage operations.
// Label:
//   - op: "get", "set" or "delete"
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of failed client storage operations, by operation.",
	},
	[]string{"op"},
)
