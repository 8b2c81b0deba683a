package vdom

import (
	"fmt"
	"strings"
	"sync"
)

// HIDGenerator generates unique hydration IDs for elements.
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

// IsInteractive reports whether the element carries at least one attribute
// starting with prefix, i.e. declares a binding.
func (v *VNode) IsInteractive(prefix string) bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for _, a := range v.Attrs {
		if strings.HasPrefix(a.Key, prefix) {
			return true
		}
	}
	return false
}

// AssignAllHIDs assigns HIDs to every element node in document order.
func AssignAllHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement {
			n.HID = gen.Next()
		}
		return true
	})
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

// CountInteractive returns the number of elements below root that declare
// a binding with prefix. Template content is not counted.
func CountInteractive(root *VNode, prefix string) int {
	count := 0
	walkLive(root, func(n *VNode) {
		if n.IsInteractive(prefix) {
			count++
		}
	})
	return count
}
