package deletemenu

import (
	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/experiments"
)

// Kind identifies a menu option independently of where it is drawn.
type Kind string

const (
	KindDelete Kind = "delete"
	KindBlock  Kind = "block"
)

// Menu labels.
const (
	LabelRemoveFromHistory   = "Remove from History"
	LabelRemoveFromBookmarks = "Remove from Bookmarks"
	LabelNeverShow           = "Never show on this page"
)

// MenuOption is one entry of the menu.
type MenuOption struct {
	Kind          Kind
	Label         string
	PrimaryAction actions.Type
	Event         actions.EventKind
}

// Layout is the derived view of a menu: visibility plus the options in
// on-screen order.
type Layout struct {
	Visible bool
	Options [2]MenuOption
}

// Option returns the option of the given kind.
func (l Layout) Option(kind Kind) (MenuOption, bool) {
	for _, opt := range l.Options {
		if opt.Kind == kind {
			return opt, true
		}
	}
	return MenuOption{}, false
}

// deleteOption depends on whether the page is bookmarked.
func deleteOption(p Props) MenuOption {
	if p.BookmarkGUID != "" {
		return MenuOption{
			Kind:          KindDelete,
			Label:         LabelRemoveFromBookmarks,
			PrimaryAction: actions.NotifyBookmarkDelete,
			Event:         actions.EventBookmarkDelete,
		}
	}
	return MenuOption{
		Kind:          KindDelete,
		Label:         LabelRemoveFromHistory,
		PrimaryAction: actions.NotifyHistoryDelete,
		Event:         actions.EventDelete,
	}
}

var blockOption = MenuOption{
	Kind:          KindBlock,
	Label:         LabelNeverShow,
	PrimaryAction: actions.NotifyBlockURL,
	Event:         actions.EventBlock,
}

// RenderMenu derives the layout for p. The natural order is delete then
// block; an experiment with ReverseMenuOptions swaps them.
func RenderMenu(p Props, exp experiments.Snapshot) Layout {
	l := Layout{
		Visible: p.Visible,
		Options: [2]MenuOption{deleteOption(p), blockOption},
	}
	if exp.ReverseMenuOptions {
		l.Options[0], l.Options[1] = l.Options[1], l.Options[0]
	}
	return l
}

// BuildActions returns the actions selecting the option of the given kind
// produces, in dispatch order: the primary action, then the user-event.
// An unknown kind produces nothing.
func BuildActions(p Props, exp experiments.Snapshot, kind Kind) []actions.Action {
	var opt MenuOption
	switch kind {
	case KindDelete:
		opt = deleteOption(p)
	case KindBlock:
		opt = blockOption
	default:
		return nil
	}

	var primary actions.Action
	switch opt.PrimaryAction {
	case actions.NotifyBookmarkDelete:
		primary = actions.BookmarkDelete(p.BookmarkGUID)
	case actions.NotifyHistoryDelete:
		primary = actions.HistoryDelete(p.URL)
	default:
		primary = actions.BlockURL(p.URL)
	}

	return []actions.Action{primary, actions.UserEvent(userEvent(p, exp, opt.Event))}
}

func userEvent(p Props, exp experiments.Snapshot, event actions.EventKind) actions.UserEventData {
	data := actions.UserEventData{
		Event:  event,
		Page:   p.Page,
		Source: p.Source,
	}
	if p.Index != nil {
		pos := *p.Index
		data.ActionPosition = &pos
	}
	if exp.Active() {
		data.ExperimentID = exp.ID
	}
	return data
}
