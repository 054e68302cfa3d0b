package infra_metrics

import (
	"github.com/humanbelnik/roomsync/core/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rooms"

// Collector counts membership outcomes, optimistic-concurrency retries and
// dual writes whose user side did not land.
type Collector struct {
	outcomes     *prometheus.CounterVec
	conflicts    *prometheus.CounterVec
	inconsistent *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "membership",
			Name:      "operations_total",
			Help:      "Membership operations by outcome.",
		}, []string{"op", "outcome"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "membership",
			Name:      "version_conflicts_total",
			Help:      "Room writes rejected because the room changed after it was read.",
		}, []string{"op"}),
		inconsistent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "membership",
			Name:      "inconsistent_writes_total",
			Help:      "Room writes whose user-side mirror write failed.",
		}, []string{"op"}),
	}

	reg.MustRegister(c.outcomes, c.conflicts, c.inconsistent)
	return c
}

func (c *Collector) Outcome(op string, outcome model.Outcome) {
	c.outcomes.WithLabelValues(op, string(outcome)).Inc()
}

func (c *Collector) Conflict(op string) {
	c.conflicts.WithLabelValues(op).Inc()
}

func (c *Collector) InconsistentWrite(op string) {
	c.inconsistent.WithLabelValues(op).Inc()
}
