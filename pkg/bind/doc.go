// Package bind wires marker attributes in a component's render tree to the
// component's handlers.
//
// An element declares a binding with an attribute named after an event
// kind, prefixed with "on-". The value names a handler:
//
//	<form on-submit="save">
//	    <input name="title" on-input="validate" on-keydown="shortcut">
//	</form>
//
// When the host attaches, the Mixin scans the render root for every kind in
// its Catalog, resolves each attribute value with a Resolver and registers
// the resulting listener. When the host detaches, every listener it
// registered is removed and the registry is cleared, so repeated
// attach/detach cycles never accumulate listeners.
//
// A marker naming a handler that does not exist is a configuration error:
// Attach returns it at once, wrapping ErrEmptyHandler, ErrHandlerNotFound or
// ErrHandlerNotCallable.
package bind
