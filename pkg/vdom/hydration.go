package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for interactive elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Expand replaces every component node in the tree with its rendered
// output, so that the tree can be walked without calling Render again.
// Component output is expanded recursively.
func Expand(node *VNode) *VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindComponent {
		if node.Comp == nil {
			return nil
		}
		return Expand(node.Comp.Render())
	}
	kept := node.Children[:0]
	for _, child := range node.Children {
		if expanded := Expand(child); expanded != nil {
			kept = append(kept, expanded)
		}
	}
	node.Children = kept
	return node
}

// AssignHIDs walks the tree and assigns HIDs to interactive elements.
// An element is interactive if it has event handlers (props starting with "on").
// Component nodes must be expanded first; see Expand.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}

	if node.Kind == KindElement && node.IsInteractive() {
		node.HID = gen.Next()
	}

	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}

// CollectHIDs returns a map of HID to VNode for all nodes with HIDs.
func CollectHIDs(node *VNode) map[string]*VNode {
	result := make(map[string]*VNode)
	Walk(node, func(n *VNode) bool {
		if n.HID != "" {
			result[n.HID] = n
		}
		return true
	})
	return result
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *VNode, hid string) *VNode {
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if n.HID == hid {
			found = n
			return false
		}
		return true
	})
	return found
}
