package vtest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/render"
	"github.com/vango-dev/newtab/pkg/vdom"
)

// ErrNoHandler is returned by Click when the node has no click handler.
var ErrNoHandler = errors.New("vtest: node has no click handler")

// Handle is a mounted component.
type Handle struct {
	comp     vdom.Component
	provider *Provider
	root     *vdom.VNode
}

// Render mounts the component built by mount against a Provider for env.
func Render(mount func(p *Provider) vdom.Component, env Env) *Handle {
	p := NewProvider(env)
	h := &Handle{comp: mount(p), provider: p}
	h.Rerender()
	return h
}

// Rerender renders the component again, replacing Root.
func (h *Handle) Rerender() {
	h.root = vdom.Expand(h.comp.Render())
}

// Component returns the mounted component.
func (h *Handle) Component() vdom.Component {
	return h.comp
}

// Provider returns the mock store.
func (h *Handle) Provider() *Provider {
	return h.provider
}

// Root returns the rendered tree.
func (h *Handle) Root() *vdom.VNode {
	return h.root
}

// ScryByClass returns every rendered element with the class, in document
// order.
func (h *Handle) ScryByClass(class string) []*vdom.VNode {
	return vdom.FindByClass(h.root, class)
}

// Click simulates a click on node by invoking its click handler.
func (h *Handle) Click(node *vdom.VNode) error {
	switch fn := node.Handler("click").(type) {
	case func():
		fn()
	case func(any):
		fn(nil)
	case nil:
		return ErrNoHandler
	default:
		return fmt.Errorf("vtest: unsupported click handler %T", fn)
	}
	return nil
}

// Dispatched returns the actions dispatched since mounting.
func (h *Handle) Dispatched() []actions.Action {
	return h.provider.Dispatched()
}

// HTML renders the mounted tree to a string.
func (h *Handle) HTML() string {
	return RenderToString(h.root)
}

// RenderToString renders a VNode and returns the HTML string.
// Render errors yield an empty string.
func RenderToString(node *vdom.VNode) string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ActionsOfType filters acts down to one type, keeping order.
func ActionsOfType(acts []actions.Action, typ actions.Type) []actions.Action {
	var out []actions.Action
	for _, a := range acts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
