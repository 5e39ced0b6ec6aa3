// Package metrics exposes Prometheus counters for command and help menu
// activity. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bot's Prometheus collectors
type Metrics struct {
	Renders          *prometheus.CounterVec // help panels rendered, by kind
	Selections       *prometheus.CounterVec // selector interactions, by result
	PermissionChecks *prometheus.CounterVec // "Usable" checks, by outcome
	Commands         *prometheus.CounterVec // commands invoked, by qualified name
	CommandErrors    *prometheus.CounterVec // failed invocations, by reason
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_help_renders_total",
			Help: "Help panels rendered",
		}, []string{"kind"}),
		Selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_help_selections_total",
			Help: "Help selector interactions handled",
		}, []string{"result"}),
		PermissionChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_help_permission_checks_total",
			Help: "Point-in-time permission checks made while rendering help",
		}, []string{"result"}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_commands_total",
			Help: "Chat commands invoked",
		}, []string{"command"}),
		CommandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_command_errors_total",
			Help: "Chat commands rejected or failed",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.Renders, m.Selections, m.PermissionChecks, m.Commands, m.CommandErrors)
	return m
}

func (m *Metrics) ObserveRender(kind string) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveSelection(result string) {
	if m == nil {
		return
	}
	m.Selections.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePermission(result string) {
	if m == nil {
		return
	}
	m.PermissionChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveCommand(name string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(name).Inc()
}

func (m *Metrics) ObserveCommandError(reason string) {
	if m == nil {
		return
	}
	m.CommandErrors.WithLabelValues(reason).Inc()
}
