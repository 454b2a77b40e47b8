// Package middleware provides toast lifecycle observers for Prometheus and
// OpenTelemetry.
//
// Both are toast.Observer implementations and are attached with
// toast.WithObserver:
//
//	reg := toast.NewRegistry(renderer,
//	    toast.WithObserver(middleware.Prometheus(middleware.WithNamespace("myapp"))),
//	    toast.WithObserver(middleware.OpenTelemetry()),
//	)
//
// # Prometheus Metrics
//
// Metrics collected:
//   - toast_shown_total: toasts that started their entrance, by severity and position
//   - toast_active: toasts on screen, by position
//   - toast_disposed_total: toasts removed, by severity and position
//   - toast_lifetime_seconds: time from creation to disposal, by severity
//   - toast_transitions_total: phase changes, by source and target phase
//
// Severities outside the built-in four are reported as "other" to keep
// label cardinality bounded.
//
// # OpenTelemetry Tracing
//
// Every toast becomes one span, started at its entrance and ended at its
// disposal, with an event per phase change. Error toasts end with an error
// status.
package middleware
