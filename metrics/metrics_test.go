package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRender("root")
	m.ObserveRender("root")
	m.ObserveSelection("close")
	m.ObservePermission("indeterminate")
	m.ObserveCommand("help")
	m.ObserveCommandError("cooldown")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Renders.WithLabelValues("root")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("close")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PermissionChecks.WithLabelValues("indeterminate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("help")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandErrors.WithLabelValues("cooldown")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRender("root")
		m.ObserveSelection("close")
		m.ObservePermission("allowed")
		m.ObserveCommand("help")
		m.ObserveCommandError("cooldown")
	})
}
