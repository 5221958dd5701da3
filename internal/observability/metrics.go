package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TripTransitionsTotal counts trip status transitions by edge.
	TripTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cabrix", Name: "trip_transitions_total", Help: "Total trip status transitions"},
		[]string{"from", "to"},
	)

	// TripTransitionRejectionsTotal counts rejected transition attempts.
	TripTransitionRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "cabrix", Name: "trip_transition_rejections_total", Help: "Total rejected trip status transitions"},
	)

	// DispatchAssignmentsTotal counts driver/vehicle bindings by kind.
	DispatchAssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cabrix", Name: "dispatch_assignments_total", Help: "Total driver and vehicle assignments"},
		[]string{"kind"},
	)

	// AuthFailuresTotal counts failed login attempts.
	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "cabrix", Name: "auth_failures_total", Help: "Total failed login attempts"},
	)
)
