// Package experiments resolves the experiment snapshot components read at
// click time, and loads experiment definitions from a file or S3.
package experiments

import "github.com/vango-dev/newtab/pkg/store"

// Snapshot is the experiment state a component acts on.
// The zero value means no experiment is active.
type Snapshot struct {
	ID                 string
	ReverseMenuOptions bool
}

// Active reports whether an experiment is running.
func (s Snapshot) Active() bool {
	return s.ID != ""
}

// FromState extracts the snapshot from a store state. A missing experiment
// node or one flagged with Error yields the zero Snapshot, so variant
// behavior never applies to an experiment that failed to load.
func FromState(state store.State) Snapshot {
	exp := state.Experiments
	if exp == nil || exp.Error {
		return Snapshot{}
	}
	return Snapshot{
		ID:                 exp.Data.ID,
		ReverseMenuOptions: exp.Data.ReverseMenuOptions,
	}
}

// Current reads the snapshot from p. A nil provider yields the zero Snapshot.
func Current(p store.StateProvider) Snapshot {
	if p == nil {
		return Snapshot{}
	}
	return FromState(p.State())
}
