package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vango-dev/newtab/pkg/actions"
)

var (
	// ErrNilAction is returned for an action without a type. It is
	// rejected before any middleware runs.
	ErrNilAction = errors.New("store: action has no type")

	// ErrUnknownAction is returned for actions whose type the reducer
	// does not handle.
	ErrUnknownAction = errors.New("store: unknown action type")

	// ErrInvalidPayload is returned when an action's payload has the
	// wrong shape for its type.
	ErrInvalidPayload = errors.New("store: invalid action payload")
)

// reduce applies a to s in place.
func reduce(s *State, a actions.Action, maxUserEvents int) error {
	switch a.Type {
	case actions.NotifyHistoryDelete:
		url, ok := a.Data.(string)
		if !ok {
			return payloadError(a)
		}
		// Bookmarked tiles survive a history delete.
		s.Sites = slices.DeleteFunc(s.Sites, func(site Site) bool {
			return site.URL == url && site.BookmarkGUID == ""
		})

	case actions.NotifyBookmarkDelete:
		guid, ok := a.Data.(string)
		if !ok {
			return payloadError(a)
		}
		for i := range s.Sites {
			if s.Sites[i].BookmarkGUID == guid {
				s.Sites[i].BookmarkGUID = ""
			}
		}

	case actions.NotifyBlockURL:
		url, ok := a.Data.(string)
		if !ok {
			return payloadError(a)
		}
		if !slices.Contains(s.Blocked, url) {
			s.Blocked = append(s.Blocked, url)
		}
		s.Sites = slices.DeleteFunc(s.Sites, func(site Site) bool {
			return site.URL == url
		})

	case actions.NotifyUserEvent:
		data, ok := a.Data.(actions.UserEventData)
		if !ok {
			return payloadError(a)
		}
		s.UserEvents = append(s.UserEvents, data)
		if maxUserEvents > 0 && len(s.UserEvents) > maxUserEvents {
			s.UserEvents = slices.Clone(s.UserEvents[len(s.UserEvents)-maxUserEvents:])
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}

func payloadError(a actions.Action) error {
	return fmt.Errorf("%w: %s carries %T", ErrInvalidPayload, a.Type, a.Data)
}
