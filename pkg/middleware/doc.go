// Package middleware provides store middleware for observability.
//
// # Prometheus Metrics
//
// The Prometheus middleware counts every dispatched action and every
// analytics user-event:
//   - newtab_actions_dispatched_total: actions by type and status
//   - newtab_action_duration_seconds: dispatch duration histogram
//   - newtab_user_events_total: user-events by event, page and source
//
//	st := store.New(store.WithMiddleware(
//	    middleware.Prometheus(middleware.WithNamespace("newtab")),
//	))
//
// Expose the default registry with promhttp:
//
//	r.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// The OpenTelemetry middleware starts one span per dispatch, named
// "store.Dispatch <type>". The span context is passed down the chain, so
// later middleware and listeners see it through SpanFromContext.
//
//	st.Use(middleware.OpenTelemetry(middleware.WithTracerName("newtab")))
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure it in main() before dispatching.
package middleware
