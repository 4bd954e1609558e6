package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal    prometheus.Counter
	ReservationsCreatedTotal prometheus.Counter
	VIPQueriesTotal          prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tablebook_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tablebook_customers_created_total",
				Help: "Total number of customers created.",
			},
		),
		ReservationsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tablebook_reservations_created_total",
				Help: "Total number of reservations created.",
			},
		),
		VIPQueriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tablebook_vip_queries_total",
				Help: "Total number of VIP ranking queries served.",
			},
		),
	}
)

// ObserveDBQuery records the elapsed time of one database query under the
// given name. Use with defer at the top of a repository method.
func ObserveDBQuery(queryName string, start time.Time) {
	DB.QueryDuration.WithLabelValues(queryName).Observe(time.Since(start).Seconds())
}
