// Package metrics defines and registers all custom Prometheus metrics for the
// clinic API. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "failure", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenChecksTotal counts bearer-token verifications performed by the
// authentication gate.
// Label:
//   - result: "ok", "missing", "invalid", "user_gone", "stale_password"
var TokenChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_checks_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Password recovery metrics ─────────────────────────────────────────────────

// PasswordResetsTotal counts password-recovery operations.
// Label:
//   - stage: "requested" (forgot-password accepted), "completed" (reset
//     consumed a token), "rejected" (invalid or expired token)
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password recovery operations, by stage.",
	},
	[]string{"stage"},
)

// ResetEmailsTotal counts reset-link delivery outcomes.
// Label:
//   - status: "sent" or "failed"
var ResetEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_emails_total",
		Help:      "Total number of password reset email deliveries, by status.",
	},
	[]string{"status"},
)

// EmailDeliveryDuration measures how long a single reset email takes from
// dequeue to provider acknowledgement.
var EmailDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_delivery_duration_seconds",
		Help:      "Duration of password reset email delivery attempts.",
		Buckets:   prometheus.DefBuckets,
	},
)
