// Package errors provides structured, actionable error messages for compost.
//
// Each error has a unique code that maps to a short message, a category and
// a default hint. Call sites add the occurrence detail and wrap the
// underlying cause so callers can still use errors.Is and errors.As.
//
// # Error Categories
//
//   - binding: a marker attribute names a handler that cannot be bound
//   - config: compost.json / compost.yaml problems
//   - bridge: live event bridge problems
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("C002").
//	    WithDetailf("<button on-click=%q>", "save").
//	    Wrap(bind.ErrHandlerNotFound)
//
//	fmt.Print(err.Format())
//	// Output:
//	// error[C002] binding: Handler not found
//	//   <button on-click="save">
//	//   cause: handler not found
//	//   hint: Define a method or handler with this name on the component, ...
//
// FormatCompact gives the same error on one line, for logs and for
// compost scan --compact.
package errors
