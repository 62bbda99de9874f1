// Package vtest provides testing helpers for newtab components.
//
// Render mounts a component against a mock store and returns a Handle
// that can be queried and clicked the way a DOM test would:
//
//	h := vtest.Render(func(p *vtest.Provider) vdom.Component {
//	    return deletemenu.New(props, deletemenu.Deps{Dispatcher: p, State: p})
//	}, vtest.Env{
//	    Dispatch: func(a actions.Action) { ... },
//	})
//	links := h.ScryByClass("context-menu-link")
//	if err := h.Click(links[0]); err != nil {
//	    t.Fatal(err)
//	}
//
// Env.GetState defaults to RawMockData, so components that read
// experiments see an empty experiment node unless a test overrides it.
//
// # Render Assertions
//
//	vtest.ExpectContains(t, node, "Remove from History")
//	vtest.ExpectAttribute(t, node, "class", "context-menu")
package vtest
