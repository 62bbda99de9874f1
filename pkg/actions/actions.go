// Package actions defines the action vocabulary dispatched by new-tab
// components to the central store.
//
// An Action is a type discriminator plus a payload. Payloads are plain
// strings for the history, bookmark and block actions and UserEventData
// for analytics user-events. Actions marshal to {"type":...,"data":...}.
package actions

import (
	"encoding/json"
	"fmt"
)

// Type discriminates actions.
type Type string

const (
	NotifyHistoryDelete  Type = "NOTIFY_HISTORY_DELETE"
	NotifyBookmarkDelete Type = "NOTIFY_BOOKMARK_DELETE"
	NotifyBlockURL       Type = "NOTIFY_BLOCK_URL"
	NotifyUserEvent      Type = "NOTIFY_USER_EVENT"
)

// Valid reports whether t is a known action type.
func (t Type) Valid() bool {
	switch t {
	case NotifyHistoryDelete, NotifyBookmarkDelete, NotifyBlockURL, NotifyUserEvent:
		return true
	}
	return false
}

// EventKind names the interaction reported by a user-event.
type EventKind string

const (
	EventDelete         EventKind = "DELETE"
	EventBookmarkDelete EventKind = "BOOKMARK_DELETE"
	EventBlock          EventKind = "BLOCK"
)

// Action is a message dispatched to the store.
type Action struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}

// UserEventData is the payload of a NOTIFY_USER_EVENT action.
// Empty Page, Source and ExperimentID and a nil ActionPosition are
// omitted from the encoded form.
type UserEventData struct {
	Event          EventKind `json:"event"`
	Page           string    `json:"page,omitempty"`
	Source         string    `json:"source,omitempty"`
	ActionPosition *int      `json:"action_position,omitempty"`
	ExperimentID   string    `json:"experiment_id,omitempty"`
}

// Position returns the action position, or -1 when unset.
func (d UserEventData) Position() int {
	if d.ActionPosition == nil {
		return -1
	}
	return *d.ActionPosition
}

// HistoryDelete removes url from browsing history.
func HistoryDelete(url string) Action {
	return Action{Type: NotifyHistoryDelete, Data: url}
}

// BookmarkDelete removes the bookmark identified by guid.
func BookmarkDelete(guid string) Action {
	return Action{Type: NotifyBookmarkDelete, Data: guid}
}

// BlockURL stops url from being shown on the page.
func BlockURL(url string) Action {
	return Action{Type: NotifyBlockURL, Data: url}
}

// UserEvent reports an interaction for analytics.
func UserEvent(data UserEventData) Action {
	return Action{Type: NotifyUserEvent, Data: data}
}

// Payload returns the payload of a string-carrying action, or "" for any
// other payload.
func (a Action) Payload() string {
	s, _ := a.Data.(string)
	return s
}

// UserEventData returns the payload of a user-event action.
func (a Action) UserEventData() (UserEventData, bool) {
	d, ok := a.Data.(UserEventData)
	return d, ok
}

// UnmarshalJSON decodes an action, restoring the typed payload for
// known action types.
func (a *Action) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type Type            `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if !raw.Type.Valid() {
		return fmt.Errorf("actions: unknown action type %q", raw.Type)
	}

	a.Type = raw.Type
	switch raw.Type {
	case NotifyUserEvent:
		var d UserEventData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("actions: decode %s: %w", raw.Type, err)
		}
		a.Data = d
	default:
		var s string
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return fmt.Errorf("actions: decode %s: %w", raw.Type, err)
		}
		a.Data = s
	}
	return nil
}
