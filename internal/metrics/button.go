// Package metrics provides Prometheus metrics for the play button.
package metrics

import (
	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector observes button transitions. Labels are bounded by the phase
// and cause enums.
type Collector struct {
	transitions  *prometheus.CounterVec
	phase        *prometheus.GaugeVec
	loadFailures prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playbutton_transitions_total",
			Help: "Total number of button phase transitions, by source phase, target phase and cause.",
		}, []string{"from", "to", "cause"}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "playbutton_phase",
			Help: "Current button phase (1 for the active phase, 0 otherwise).",
		}, []string{"phase"}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playbutton_load_failures_total",
			Help: "Total number of failed content loads.",
		}),
	}
	reg.MustRegister(c.transitions, c.phase, c.loadFailures)
	return c
}

// SetInitial marks the phase the button starts in.
func (c *Collector) SetInitial(p domain.Phase) {
	c.setPhase(p)
}

func (c *Collector) OnTransition(t domain.Transition) {
	c.transitions.WithLabelValues(t.From.String(), t.To.String(), string(t.Cause)).Inc()
	if t.Cause == domain.CauseLoadFailed {
		c.loadFailures.Inc()
	}
	c.setPhase(t.To)
}

func (c *Collector) setPhase(active domain.Phase) {
	for p := domain.Idle; p <= domain.Paused; p++ {
		v := 0.0
		if p == active {
			v = 1
		}
		c.phase.WithLabelValues(p.String()).Set(v)
	}
}
