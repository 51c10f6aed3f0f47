// Package metrics registers the service's Prometheus collectors with the
// default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodieride"

// OrdersCreatedTotal counts booked orders.
// Label:
//   - type: the order type (e.g. "food")
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders booked by customers.",
	},
	[]string{"type"},
)

// OrdersAcceptedTotal counts accept attempts.
// Label:
//   - result: "accepted", "not_found", "already_accepted" or "error"
var OrdersAcceptedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_accepted_total",
		Help:      "Total number of accept attempts by captains, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "login", "signup", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GeoFallbackTotal counts times an external map service was replaced by fixed data.
// Label:
//   - source: "overpass" or "nominatim"
var GeoFallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geo_fallback_total",
		Help:      "Total number of geo lookups answered from fallback data.",
	},
	[]string{"source"},
)
