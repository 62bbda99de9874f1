// Package store provides the central new-tab store.
//
// Components never mutate state directly. They dispatch actions through a
// Dispatcher and read snapshots through a StateProvider:
//
//	s := store.New(store.WithInitialState(store.State{Sites: sites}))
//	s.Use(middleware.Prometheus(), middleware.OpenTelemetry())
//
//	s.Dispatch(actions.BlockURL("https://foo.com"))
//	snap := s.State()
//
// Dispatch runs the middleware chain, then the reducer, then notifies
// subscribers. Snapshots returned by State are copies; holding one never
// blocks or observes later dispatches.
package store
