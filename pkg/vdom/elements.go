package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with an arbitrary tag, such as a custom element name.
func El(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			if !v.IsEmpty() {
				node.SetAttr(v.Key, v.Value)
			}

		case []Attr:
			for _, attr := range v {
				if !attr.IsEmpty() {
					node.SetAttr(attr.Key, attr.Value)
				}
			}

		case *VNode:
			node.AppendChild(v)

		case []*VNode:
			for _, child := range v {
				node.AppendChild(child)
			}

		case string:
			// Shorthand for text node
			node.AppendChild(Text(v))
		}
	}

	return node
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Comment creates a comment node.
func Comment(content string) *VNode {
	return &VNode{
		Kind: KindComment,
		Text: content,
	}
}

// Fragment groups children without a wrapper element. A fragment is also
// what a component uses as its shadow root.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case *VNode:
			node.AppendChild(v)
		case []*VNode:
			for _, c := range v {
				node.AppendChild(c)
			}
		case string:
			node.AppendChild(Text(v))
		}
	}

	return node
}

// Builders for the elements components commonly declare bindings on.

func Div(args ...any) *VNode    { return createElement("div", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func Span(args ...any) *VNode   { return createElement("span", args) }
func Ul(args ...any) *VNode     { return createElement("ul", args) }
func Li(args ...any) *VNode     { return createElement("li", args) }
func A(args ...any) *VNode      { return createElement("a", args) }
func Form(args ...any) *VNode   { return createElement("form", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Input(args ...any) *VNode  { return createElement("input", args) }
