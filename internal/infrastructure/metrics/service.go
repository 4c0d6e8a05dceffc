// Package metrics implements ports.TradeMetrics with prometheus counters.
package metrics

import (
	"bufio"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

const (
	defaultNamespace = "cauldron"
	subsystem        = "trade"
)

// Service holds the trade counters.
type Service struct {
	gatherer prometheus.Gatherer

	ProposalsCreated        *prometheus.CounterVec
	FundingFailures         *prometheus.CounterVec
	BroadcastedTransactions prometheus.Counter
	ChainFailures           prometheus.Counter
}

// NewService registers the trade counters in the given registry, or in a new
// one if nil.
func NewService(namespace string, registry *prometheus.Registry) *Service {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Service{
		gatherer: registry,
		ProposalsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "proposals_created_total",
			Help:      "Total number of trade proposals created",
		}, []string{"supply_token", "demand_token"}),
		FundingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "funding_failures_total",
			Help:      "Total number of failed funding passes by reason",
		}, []string{"reason"}),
		BroadcastedTransactions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transactions_broadcasted_total",
			Help:      "Total number of trade transactions broadcasted",
		}),
		ChainFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chain_failures_total",
			Help:      "Total number of trade chains partially broadcasted",
		}),
	}
}

// compile-time check
var _ ports.TradeMetrics = (*Service)(nil)

func (s *Service) ProposalCreated(supplyTokenID, demandTokenID string) {
	s.ProposalsCreated.WithLabelValues(supplyTokenID, demandTokenID).Inc()
}

func (s *Service) FundingFailed(reason string) {
	s.FundingFailures.WithLabelValues(reason).Inc()
}

func (s *Service) TransactionsBroadcasted(count int) {
	if count <= 0 {
		return
	}
	s.BroadcastedTransactions.Add(float64(count))
}

func (s *Service) ChainFailed() {
	s.ChainFailures.Inc()
}

// Dump writes the current value of every metric of the registry.
func (s *Service) Dump(w io.Writer) error {
	metricFamily, err := s.gatherer.Gather()
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(w)
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
