// Package metrics registra las métricas Prometheus de la aplicación.
// Todas usan promauto sobre el registry por defecto; /metrics las expone vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "petclinic"

// HTTPRequestsTotal cuenta requests por método, patrón de ruta y status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AggregateMutationsTotal cuenta escrituras exitosas del agregado owner.
// Label kind: owner_created, owner_updated, pet_created, pet_updated, visit_created.
var AggregateMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregate_mutations_total",
		Help:      "Total number of persisted owner aggregate mutations, by kind.",
	},
	[]string{"kind"},
)

// ValidationFailuresTotal cuenta formularios rechazados, por formulario y campo.
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of field validation failures, by form and field.",
	},
	[]string{"form", "field"},
)

// CacheLookupsTotal: result = hit | miss | error.
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups, by cache and result.",
	},
	[]string{"cache", "result"},
)

// FlashMessagesTotal: op = put | take.
var FlashMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flash_messages_total",
		Help:      "Total number of flash messages stored and consumed.",
	},
	[]string{"op"},
)
