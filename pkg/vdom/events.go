package vdom

// MarkerPrefix is the attribute prefix that declares an event binding:
// on-click="save" asks the owning component to call its save handler
// whenever the element receives a click.
const MarkerPrefix = "on-"

// On creates a marker attribute binding the event kind to the named handler.
// Any kind works; the owning component only binds kinds in its catalog.
func On(kind, handler string) Attr {
	return Attr{Key: MarkerPrefix + kind, Value: handler}
}

// OnClick binds click events.
func OnClick(handler string) Attr { return On("click", handler) }

// OnKeyDown binds keydown events.
func OnKeyDown(handler string) Attr { return On("keydown", handler) }

// OnInput binds input events (fired when value changes).
func OnInput(handler string) Attr { return On("input", handler) }

// OnSubmit binds form submit events.
func OnSubmit(handler string) Attr { return On("submit", handler) }
