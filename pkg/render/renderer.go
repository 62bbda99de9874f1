package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/newtab/pkg/vdom"
)

// booleanAttrs render as a bare attribute name when true and are omitted
// when false.
var booleanAttrs = map[string]bool{
	"hidden":   true,
	"disabled": true,
	"checked":  true,
	"async":    true,
	"defer":    true,
}

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables newline-separated block output.
	// Should only be used in development as it increases output size.
	Pretty bool
}

// Renderer handles server-side rendering of VNode trees to HTML.
type Renderer struct {
	config   RendererConfig
	hids     *vdom.HIDGenerator
	handlers map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	return &Renderer{
		config:   config,
		hids:     vdom.NewHIDGenerator(),
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
// Component nodes are expanded and interactive elements receive HIDs
// before anything is written.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	node = vdom.Expand(node)
	vdom.AssignHIDs(node, r.hids)
	for hid, n := range vdom.CollectHIDs(node) {
		r.registerHandlers(hid, n)
	}
	return r.renderNode(w, node)
}

// GetHandlers returns the handler registry collected during rendering.
// The map keys are in the format "hid_eventname" (e.g., "h1_onclick").
func (r *Renderer) GetHandlers() map[string]any {
	return r.handlers
}

// Reset resets the renderer state for reuse.
// This clears the HID counter and handler registry.
func (r *Renderer) Reset() {
	r.hids.Reset()
	r.handlers = make(map[string]any)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindComponent:
		// Expand already resolved components; a component here was added
		// after expansion and is rendered without hydration.
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render())
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode) error {
	if _, err := io.WriteString(w, "<"+node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if node.HID != "" {
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, node.HID); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if vdom.IsVoidElement(node.Tag) {
		return r.newline(w)
	}

	if node.Tag == "script" || node.Tag == "style" {
		// Raw text elements: children are trusted literals.
		for _, child := range node.Children {
			if child.Kind == vdom.KindText {
				if _, err := io.WriteString(w, child.Text); err != nil {
					return err
				}
			}
		}
	} else if err := r.renderChildren(w, node); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	return r.newline(w)
}

func (r *Renderer) renderChildren(w io.Writer, node *vdom.VNode) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child); err != nil {
			return err
		}
	}
	return nil
}

// renderAttributes renders all attributes for an element in sorted order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			events = append(events, key[2:])
			continue
		}
		if key == "key" || strings.HasPrefix(key, "_") {
			continue
		}

		if booleanAttrs[key] {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		s := attrToString(value)
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}

	// Event markers tell the client which events to forward.
	for _, name := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, strings.ToLower(name)); err != nil {
			return err
		}
	}
	return nil
}

// registerHandlers stores handler references for the given HID.
func (r *Renderer) registerHandlers(hid string, node *vdom.VNode) {
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			r.handlers[hid+"_"+key] = value
		}
	}
}

func (r *Renderer) newline(w io.Writer) error {
	if !r.config.Pretty {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// isEventHandler returns true if the value looks like an event handler.
func isEventHandler(value any) bool {
	if value == nil {
		return false
	}
	switch value.(type) {
	case func(), func(any):
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
