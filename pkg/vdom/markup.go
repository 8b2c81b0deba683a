package vdom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HIDAttr is the attribute Render writes for nodes carrying a hydration ID.
const HIDAttr = "data-hid"

// bodyContext is the parsing context for fragments: markup is read as if it
// appeared inside <body>, which is where a component template lives.
var bodyContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "body",
	DataAtom: atom.Body,
}

// Parse reads HTML markup into a fragment root suitable for use as a shadow
// root. Attribute presence is the only thing the binding layer relies on;
// the markup is not otherwise validated.
func Parse(r io.Reader) (*VNode, error) {
	nodes, err := html.ParseFragment(r, bodyContext)
	if err != nil {
		return nil, fmt.Errorf("vdom: parse markup: %w", err)
	}

	root := Fragment()
	for _, n := range nodes {
		root.AppendChild(fromHTML(n))
	}
	return root, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*VNode, error) {
	return Parse(strings.NewReader(markup))
}

// fromHTML converts a parsed html.Node subtree. Unsupported node types
// (doctype, raw document nodes) become nil and are dropped by AppendChild.
func fromHTML(n *html.Node) *VNode {
	var node *VNode
	switch n.Type {
	case html.ElementNode:
		node = &VNode{Kind: KindElement, Tag: n.Data, Children: make([]*VNode, 0)}
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			node.Attrs = append(node.Attrs, Attr{Key: key, Value: a.Val})
		}
	case html.TextNode:
		return Text(n.Data)
	case html.CommentNode:
		return Comment(n.Data)
	case html.DocumentNode:
		node = Fragment()
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.AppendChild(fromHTML(c))
	}
	return node
}

// Render writes the tree as HTML. Elements with an HID get a data-hid
// attribute so a browser client can address them.
func Render(w io.Writer, node *VNode) error {
	if node == nil {
		return nil
	}
	if node.Kind == KindFragment {
		for _, child := range node.Children {
			if err := Render(w, child); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, toHTML(node))
}

// RenderString renders the tree to a string.
func RenderString(node *VNode) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(v *VNode) *html.Node {
	switch v.Kind {
	case KindText:
		return &html.Node{Type: html.TextNode, Data: v.Text}
	case KindComment:
		return &html.Node{Type: html.CommentNode, Data: v.Text}
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     v.Tag,
		DataAtom: atom.Lookup([]byte(v.Tag)),
	}
	for _, a := range v.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	if v.HID != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: HIDAttr, Val: v.HID})
	}
	if IsVoidElement(v.Tag) {
		return n
	}
	for _, child := range v.Children {
		appendHTML(n, child)
	}
	return n
}

// appendHTML appends child to n, flattening nested fragments.
func appendHTML(n *html.Node, child *VNode) {
	if child.Kind == KindFragment {
		for _, grandchild := range child.Children {
			appendHTML(n, grandchild)
		}
		return
	}
	n.AppendChild(toHTML(child))
}
