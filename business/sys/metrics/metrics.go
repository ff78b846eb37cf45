// Package metrics constructs the metrics the node publishes on the debug
// endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set of collectors maintained by the node. Registered against the default
// registry and served by promhttp on the debug mux.
var (
	// Requests counts handled API requests by status class.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mycoin",
		Name:      "requests_total",
		Help:      "Number of API requests handled.",
	}, []string{"status"})

	// Panics counts recovered handler panics.
	Panics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mycoin",
		Name:      "panics_total",
		Help:      "Number of recovered handler panics.",
	})

	// Transactions counts submitted transactions by outcome.
	Transactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mycoin",
		Name:      "transactions_total",
		Help:      "Number of submitted transactions by outcome.",
	}, []string{"outcome"})

	// BlocksMined counts blocks sealed by this node.
	BlocksMined = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mycoin",
		Name:      "blocks_mined_total",
		Help:      "Number of blocks mined by this node.",
	})
)
