package vdom

import "strings"

// Walk visits the tree depth-first in document order. Returning false from
// fn stops the walk.
func Walk(node *VNode, fn func(*VNode) bool) {
	walk(node, fn)
}

func walk(node *VNode, fn func(*VNode) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	for _, child := range node.Children {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

// HasClass reports whether the element carries the given class name.
func HasClass(node *VNode, class string) bool {
	if node == nil || node.Kind != KindElement {
		return false
	}
	classes, _ := node.Props["class"].(string)
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// FindByClass returns every element carrying the class, in document order.
func FindByClass(node *VNode, class string) []*VNode {
	var result []*VNode
	Walk(node, func(n *VNode) bool {
		if HasClass(n, class) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// FindByTag returns every element with the tag, in document order.
func FindByTag(node *VNode, tag string) []*VNode {
	var result []*VNode
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement && n.Tag == tag {
			result = append(result, n)
		}
		return true
	})
	return result
}

// TextContent concatenates the text of every text node under node.
func TextContent(node *VNode) string {
	var b strings.Builder
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}

// IsHidden reports whether the element has a truthy hidden attribute.
func IsHidden(node *VNode) bool {
	if node == nil || node.Kind != KindElement {
		return false
	}
	switch v := node.Props["hidden"].(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	default:
		return false
	}
}
