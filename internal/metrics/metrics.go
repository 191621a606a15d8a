package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records query execution metrics. It satisfies query.Observer.
type Collector struct {
	// QueriesTotal counts executed commands by status.
	QueriesTotal *prometheus.CounterVec
	// QueryDuration is the latency of executed commands.
	QueryDuration prometheus.Histogram
	// ClausesTotal counts applied clauses by keyword, subquery clauses
	// included.
	ClausesTotal *prometheus.CounterVec
}

// New creates a collector registered on reg. A nil reg creates unregistered
// metrics.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mhql_queries_total",
				Help: "Total number of executed MHQL commands",
			},
			[]string{"status"},
		),
		QueryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mhql_query_duration_seconds",
				Help:    "MHQL command latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		ClausesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mhql_clauses_total",
				Help: "Total number of applied MHQL clauses",
			},
			[]string{"keyword"},
		),
	}
}

// ObserveQuery records one executed command
func (c *Collector) ObserveQuery(status string, elapsed time.Duration) {
	c.QueriesTotal.WithLabelValues(status).Inc()
	c.QueryDuration.Observe(elapsed.Seconds())
}

// ObserveClause records one applied clause
func (c *Collector) ObserveClause(keyword string) {
	c.ClausesTotal.WithLabelValues(keyword).Inc()
}
