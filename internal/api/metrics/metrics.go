// Package metrics defines and registers all custom Prometheus metrics for the
// Gong Cha admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics registered here use the default Prometheus registry via promauto,
// so importing the package is enough; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gongcha"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SessionsIssuedTotal counts long-lived sessions created via the identity
// token exchange.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of admin sessions issued.",
	},
)

// AuthFailuresTotal counts refused authentication attempts.
// Label:
//   - reason: "invalid_credentials", "inactive", "invalid_session", "revoked"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of refused authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordWritesTotal counts successful record mutations.
// Labels:
//   - resource: "member", "staff", "store", "menu"
//   - op: "create", "update", "delete", "points", "voucher"
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of successful record writes, by resource and operation.",
	},
	[]string{"resource", "op"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
