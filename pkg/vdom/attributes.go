package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf creates an arbitrary attribute.
func AttrOf(key, value string) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Form controls

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }
