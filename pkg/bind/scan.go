package bind

import "github.com/vango-dev/compost/pkg/vdom"

// Match is one (element, kind) pair found by Scan.
type Match struct {
	Element *vdom.VNode
	Kind    string
	Attr    string // marker attribute name, e.g. "on-click"
	Handler string // attribute value, not yet resolved
}

// Scan returns every marker attribute below root. Kinds are visited in
// catalog order and, within a kind, elements in document order. An element
// carrying several markers yields one match per kind. A nil root yields no
// matches.
func Scan(root *vdom.VNode, catalog Catalog, prefix string) []Match {
	if root == nil {
		return nil
	}
	var matches []Match
	for _, kind := range catalog {
		attr := prefix + kind
		for _, el := range vdom.QuerySelectorAll(root, attr) {
			name, _ := el.GetAttr(attr)
			matches = append(matches, Match{
				Element: el,
				Kind:    kind,
				Attr:    attr,
				Handler: name,
			})
		}
	}
	return matches
}

// Check resolves every match without binding anything and returns one
// coded error per marker that would make Attach fail, in scan order.
func Check(matches []Match, r Resolver) []error {
	var errs []error
	for _, m := range matches {
		if _, err := r.Resolve(m.Handler); err != nil {
			errs = append(errs, resolveError(m, err))
		}
	}
	return errs
}
