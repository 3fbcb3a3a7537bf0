package metrics

import (
	"testing"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.SetInitial(domain.Idle)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.phase.WithLabelValues("idle")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.phase.WithLabelValues("loading")))

	c.OnTransition(domain.Transition{From: domain.Idle, To: domain.Loading, Cause: domain.CauseTrigger})
	c.OnTransition(domain.Transition{From: domain.Loading, To: domain.Idle, Cause: domain.CauseLoadFailed})
	c.OnTransition(domain.Transition{From: domain.Idle, To: domain.Loading, Cause: domain.CauseTrigger})
	c.OnTransition(domain.Transition{From: domain.Loading, To: domain.Playing, Cause: domain.CauseLoaded})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.transitions.WithLabelValues("idle", "loading", "trigger")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("loading", "playing", "loaded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loadFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.phase.WithLabelValues("playing")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.phase.WithLabelValues("idle")))
	assert.Equal(t, 3, testutil.CollectAndCount(c.transitions))
}
