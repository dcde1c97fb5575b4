package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway. A nil *Metrics is
// valid and records nothing, which keeps handler tests free of registry
// collisions.
type Metrics struct {
	SessionsOpened        prometheus.Counter
	TransactionsEvaluated prometheus.Counter
	TransactionsSubmitted prometheus.Counter
	TransactionFailures   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tender_gateway_sessions_opened_total",
			Help: "Total number of ledger sessions opened",
		}),
		TransactionsEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tender_gateway_transactions_evaluated_total",
			Help: "Total number of read-only transaction evaluations",
		}),
		TransactionsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tender_gateway_transactions_submitted_total",
			Help: "Total number of state-changing transaction submissions",
		}),
		TransactionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tender_gateway_transaction_failures_total",
			Help: "Total number of failed ledger invocations",
		}),
	}
}

// IncSessionsOpened increments the opened-sessions counter by 1.
func (m *Metrics) IncSessionsOpened() {
	if m == nil {
		return
	}
	m.SessionsOpened.Inc()
}

// IncTransactionsEvaluated increments the evaluate counter by 1.
func (m *Metrics) IncTransactionsEvaluated() {
	if m == nil {
		return
	}
	m.TransactionsEvaluated.Inc()
}

// IncTransactionsSubmitted increments the submit counter by 1.
func (m *Metrics) IncTransactionsSubmitted() {
	if m == nil {
		return
	}
	m.TransactionsSubmitted.Inc()
}

// IncTransactionFailures increments the failed-invocation counter by 1.
func (m *Metrics) IncTransactionFailures() {
	if m == nil {
		return
	}
	m.TransactionFailures.Inc()
}
