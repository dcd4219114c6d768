// Package metrics defines and registers all custom Prometheus metrics for
// the back-office API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// echoprometheus handler mounted at /metrics exposes them alongside the
// per-route HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banki"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// CaptchasIssuedTotal counts captcha challenges handed out.
var CaptchasIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "captchas_issued_total",
		Help:      "Total number of captcha challenges issued.",
	},
)

// ProductsCreatedTotal counts newly registered product applications.
// Label:
//   - product_type: "CONSUMER_CREDIT", "PAYROLL_FREE_INVESTMENT_LOAN" or "CREDIT_CARD"
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of product applications created, by product type.",
	},
	[]string{"product_type"},
)

// ProductStatusUpdatesTotal counts status-only updates on applications.
// Label:
//   - status: the status applied ("OPEN", "IN_PROGRESS", "CLOSED")
var ProductStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_status_updates_total",
		Help:      "Total number of status changes applied to product applications.",
	},
	[]string{"status"},
)
