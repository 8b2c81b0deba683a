package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper; also a shadow root
	KindComment               // <!-- ... -->
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// VNode is a node in a component's render tree.
//
// A VNode is not safe for concurrent use. Listener registration and event
// dispatch are expected to happen on the goroutine that owns the component.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Attrs    []Attr   // Attributes in source order
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindComment
	HID      string   // Hydration ID (assigned before serving)

	parent    *VNode
	host      *VNode // set on a shadow root; the element it is attached to
	shadow    *VNode // set on a host element; its shadow root
	listeners map[string][]*Listener
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Parent returns the parent node, or nil for a root.
func (v *VNode) Parent() *VNode {
	if v == nil {
		return nil
	}
	return v.parent
}

// Host returns the element a shadow root is attached to.
func (v *VNode) Host() *VNode {
	if v == nil {
		return nil
	}
	return v.host
}

// ShadowRoot returns the shadow root attached to this element, if any.
func (v *VNode) ShadowRoot() *VNode {
	if v == nil {
		return nil
	}
	return v.shadow
}

// AttachShadow makes root the shadow root of v. Composed events dispatched
// inside root continue to v once they reach the top of root.
func (v *VNode) AttachShadow(root *VNode) {
	if v.shadow != nil {
		v.shadow.host = nil
	}
	v.shadow = root
	if root != nil {
		root.host = v
	}
}

// AppendChild adds child as the last child of v.
func (v *VNode) AppendChild(child *VNode) {
	if child == nil {
		return
	}
	child.parent = v
	v.Children = append(v.Children, child)
}

// GetAttr returns the value of the attribute and whether it is present.
func (v *VNode) GetAttr(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, a := range v.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, regardless of its value.
func (v *VNode) HasAttr(key string) bool {
	_, ok := v.GetAttr(key)
	return ok
}

// SetAttr sets an attribute, replacing an existing value in place.
func (v *VNode) SetAttr(key, value string) {
	for i := range v.Attrs {
		if v.Attrs[i].Key == key {
			v.Attrs[i].Value = value
			return
		}
	}
	v.Attrs = append(v.Attrs, Attr{Key: key, Value: value})
}

// Walk visits v and its descendants in document order. Returning false from
// fn skips the node's children.
func Walk(v *VNode, fn func(*VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, child := range v.Children {
		Walk(child, fn)
	}
}

// QuerySelectorAll returns every element below root that carries the
// attribute, in document order. Like the DOM method of the same name, root
// itself is not a candidate and the content of <template> elements is not
// searched.
func QuerySelectorAll(root *VNode, attr string) []*VNode {
	var out []*VNode
	walkLive(root, func(n *VNode) {
		if n.Kind == KindElement && n.HasAttr(attr) {
			out = append(out, n)
		}
	})
	return out
}

// walkLive visits the descendants of root in document order, skipping the
// children of template elements.
func walkLive(root *VNode, fn func(*VNode)) {
	if root == nil {
		return
	}
	for _, child := range root.Children {
		Walk(child, func(n *VNode) bool {
			fn(n)
			return !(n.Kind == KindElement && n.Tag == "template")
		})
	}
}

// Path returns a short selector-like description of the node's position,
// e.g. "form#signup > button".
func (v *VNode) Path() string {
	var parts []string
	for n := v; n != nil; n = n.parent {
		if n.Kind != KindElement {
			continue
		}
		part := n.Tag
		if id, ok := n.GetAttr("id"); ok && id != "" {
			part += "#" + id
		}
		parts = append(parts, part)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}
