// Package vdom provides the render tree a component exposes to the binding
// layer.
//
// A VNode tree is what a component renders into its shadow root. The tree
// can be built in Go with variadic factory functions or parsed from HTML
// markup:
//
//	root := Fragment(
//	    Form(ID("signup"), OnSubmit("save"),
//	        Input(Name("email"), OnInput("validate")),
//	        Button(AttrOf("type", "submit"), Text("Join")),
//	    ),
//	)
//
//	root, err := ParseString(`<button on-click="save">Save</button>`)
//
// # Listeners
//
// Every node is an event target. AddEventListener and RemoveEventListener
// register *Listener values, compared by pointer. DispatchEvent runs the
// listeners of the target and, for bubbling events, of each ancestor.
// Composed events cross from a shadow root to its host element.
//
// # Hydration
//
// AssignAllHIDs numbers every element in document order. The numbering is
// deterministic for a given tree, which lets a browser page rendered from
// one instance address elements of another instance built from the same
// markup. CollectHIDs indexes a numbered tree by HID. Neither the scan nor
// CountInteractive looks inside <template> content.
package vdom
