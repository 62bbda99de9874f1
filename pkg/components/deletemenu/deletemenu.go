// Package deletemenu implements the context menu shown on a new-tab tile.
//
// The menu offers two options: remove the page (from history, or from
// bookmarks when the page is bookmarked) and never show it again. Selecting
// an option dispatches the primary action and an analytics user-event, then
// calls OnUpdate. An active experiment may swap the on-screen order of the
// options; what an option does is bound to its Kind, never its position.
package deletemenu

import (
	"github.com/vango-dev/newtab/pkg/experiments"
	"github.com/vango-dev/newtab/pkg/store"
	"github.com/vango-dev/newtab/pkg/vdom"
)

// CSS classes used by the rendered menu.
const (
	ClassMenu = "context-menu"
	ClassLink = "context-menu-link"
)

// Props configures a menu. Only URL is required.
type Props struct {
	URL          string
	BookmarkGUID string
	Visible      bool

	// Page, Source and Index are analytics context. Index becomes the
	// user-event's action_position; nil leaves it out.
	Page   string
	Source string
	Index  *int

	// OnUpdate is called after a selection has been dispatched.
	OnUpdate func()
}

// Position returns a pointer to i, for Props.Index.
func Position(i int) *int {
	return &i
}

// Deps are the store collaborators a menu talks to.
type Deps struct {
	Dispatcher store.Dispatcher

	// State is read once per click for the experiment snapshot.
	// Nil means no experiment.
	State store.StateProvider
}

// DeleteMenu is the menu component.
type DeleteMenu struct {
	props Props
	deps  Deps
}

// New creates a menu.
func New(props Props, deps Deps) *DeleteMenu {
	return &DeleteMenu{props: props, deps: deps}
}

// Props returns the menu's props.
func (m *DeleteMenu) Props() Props {
	return m.props
}

// Layout returns the layout for the current experiment snapshot.
func (m *DeleteMenu) Layout() Layout {
	return RenderMenu(m.props, experiments.Current(m.deps.State))
}

// Render implements vdom.Component.
func (m *DeleteMenu) Render() *vdom.VNode {
	layout := m.Layout()
	return vdom.Ul(
		vdom.Class(ClassMenu),
		vdom.Role("menu"),
		vdom.HiddenIf(!layout.Visible),
		vdom.Range(layout.Options[:], func(opt MenuOption, _ int) *vdom.VNode {
			kind := opt.Kind
			return vdom.Li(
				vdom.Key(kind),
				vdom.Role("none"),
				vdom.A(
					vdom.Class(ClassLink),
					vdom.Role("menuitem"),
					vdom.Href("#"),
					vdom.Data("option", string(kind)),
					vdom.OnClick(func() { m.Select(kind) }),
					vdom.Text(opt.Label),
				),
			)
		}),
	)
}

// Select performs the option of the given kind: it reads the experiment
// snapshot, dispatches the resulting actions in order and calls OnUpdate.
func (m *DeleteMenu) Select(kind Kind) {
	acts := BuildActions(m.props, experiments.Current(m.deps.State), kind)
	if len(acts) == 0 {
		return
	}
	if m.deps.Dispatcher != nil {
		for _, a := range acts {
			m.deps.Dispatcher.Dispatch(a)
		}
	}
	if m.props.OnUpdate != nil {
		m.props.OnUpdate()
	}
}
