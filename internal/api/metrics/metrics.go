// Package metrics defines the custom Prometheus metrics for the parish CMS
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parish"

// LoginsTotal counts login attempts per namespace.
// Labels:
//   - audience: "staff" or "member"
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by audience and result.",
	},
	[]string{"audience", "result"},
)

// ActivationsTotal counts activation protocol runs.
// Label:
//   - resource: "announcement" or "bulletin"
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of content activations, by resource type.",
	},
	[]string{"resource"},
)

// BulletinUploadsTotal counts bulletin file uploads.
// Label:
//   - result: "ok", "store_failed" or "record_failed"
var BulletinUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulletin_uploads_total",
		Help:      "Total number of bulletin uploads, by result.",
	},
	[]string{"result"},
)

// CalendarSyncEntriesTotal counts calendar feed entries per sync outcome.
// Label:
//   - outcome: "created", "updated" or "skipped"
var CalendarSyncEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_sync_entries_total",
		Help:      "Total number of calendar feed entries handled during sync, by outcome.",
	},
	[]string{"outcome"},
)

// SubscriptionsTotal counts mailing-list changes.
// Label:
//   - action: "subscribe" or "unsubscribe"
var SubscriptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_total",
		Help:      "Total number of mailing-list subscribe/unsubscribe operations.",
	},
	[]string{"action"},
)
