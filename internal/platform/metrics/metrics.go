// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sibai_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sibai_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"method", "route"})

	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sibai_transactions_total",
		Help: "Exchange transactions by resulting status",
	}, []string{"status"})

	sessionsClosedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sibai_cash_sessions_closed_total",
		Help: "Cash sessions reconciled and closed",
	})

	discrepanciesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sibai_closing_discrepancies_total",
		Help: "Currencies closed with a non-zero difference between actual and system balance",
	}, []string{"kind"})
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	httpReqTotal.WithLabelValues(method, route, status).Inc()
	httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TransactionRecorded counts a transaction entering status.
func TransactionRecorded(status string) {
	transactionsTotal.WithLabelValues(status).Inc()
}

// SessionClosed counts a closed session and classifies each reconciled difference.
func SessionClosed(differences []decimal.Decimal) {
	sessionsClosedTotal.Inc()
	for _, d := range differences {
		switch {
		case d.IsPositive():
			discrepanciesTotal.WithLabelValues("surplus").Inc()
		case d.IsNegative():
			discrepanciesTotal.WithLabelValues("shortage").Inc()
		}
	}
}
