package store

import (
	"slices"

	"github.com/vango-dev/newtab/pkg/actions"
)

// ExperimentData describes the active experiment, if any.
type ExperimentData struct {
	ID                 string `json:"id,omitempty"`
	ReverseMenuOptions bool   `json:"reverseMenuOptions,omitempty"`
}

// Experiments is the experiment node of the state tree. Error is set when
// the experiment definition could not be loaded.
type Experiments struct {
	Data  ExperimentData `json:"data"`
	Error bool           `json:"error"`
}

// Site is a tile on the new-tab page.
type Site struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	BookmarkGUID string `json:"bookmarkGuid,omitempty"`
	Source       string `json:"source,omitempty"`
}

// State is a snapshot of the store.
type State struct {
	// Experiments is nil when no experiment node has been loaded.
	Experiments *Experiments `json:"Experiments,omitempty"`

	Sites      []Site                  `json:"sites"`
	Blocked    []string                `json:"blocked"`
	UserEvents []actions.UserEventData `json:"userEvents"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Sites:      slices.Clone(s.Sites),
		Blocked:    slices.Clone(s.Blocked),
		UserEvents: slices.Clone(s.UserEvents),
	}
	if s.Experiments != nil {
		exp := *s.Experiments
		out.Experiments = &exp
	}
	return out
}

// IsBlocked reports whether url has been blocked.
func (s State) IsBlocked(url string) bool {
	return slices.Contains(s.Blocked, url)
}

// Site returns the tile for url.
func (s State) Site(url string) (Site, bool) {
	for _, site := range s.Sites {
		if site.URL == url {
			return site, true
		}
	}
	return Site{}, false
}
