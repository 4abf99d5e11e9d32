package service

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeRendered = "rendered"
	outcomeEmpty    = "empty"
	outcomeFailed   = "failed"
)

var renderTasksTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_render_tasks_total",
		Help: "Page render tasks by view and outcome.",
	},
	[]string{"view", "outcome"},
)

func init() {
	prometheus.MustRegister(renderTasksTotal)
}
