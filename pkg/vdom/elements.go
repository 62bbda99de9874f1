package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string, EventHandler.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))

		case EventHandler:
			node.Props[v.Event] = v.Handler
		}
	}

	return node
}

// setAttr applies a single attribute. Repeated class attributes are merged.
func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	switch a.Key {
	case "key":
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
	case "class":
		if existing, ok := v.Props["class"].(string); ok && existing != "" {
			if s, ok := a.Value.(string); ok && s != "" {
				v.Props["class"] = existing + " " + s
				return
			}
		}
	}
	v.Props[a.Key] = a.Value
}

// Document structure elements

func Html(args ...any) *VNode  { return createElement("html", args) }
func Head(args ...any) *VNode  { return createElement("head", args) }
func Body(args ...any) *VNode  { return createElement("body", args) }
func Title(args ...any) *VNode { return createElement("title", args) }
func Meta(args ...any) *VNode  { return createElement("meta", args) }

// Content sectioning elements

func Main(args ...any) *VNode { return createElement("main", args) }
func H1(args ...any) *VNode   { return createElement("h1", args) }

// Text content elements

func P(args ...any) *VNode  { return createElement("p", args) }
func Ul(args ...any) *VNode { return createElement("ul", args) }
func Li(args ...any) *VNode { return createElement("li", args) }

// Inline and interactive elements

func A(args ...any) *VNode      { return createElement("a", args) }
func Script(args ...any) *VNode { return createElement("script", args) }
func Style(args ...any) *VNode  { return createElement("style", args) }
