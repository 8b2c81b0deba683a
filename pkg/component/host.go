package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/compost/pkg/vdom"
)

// Host is a component instance: a host element, its shadow render root and
// the observers coupled to its lifecycle.
type Host struct {
	name      string
	element   *vdom.VNode
	observers []Observer
	connected bool
	logger    *slog.Logger
}

// Option configures a Host.
type Option func(*Host) error

// WithRoot attaches root as the host's render root.
func WithRoot(root *vdom.VNode) Option {
	return func(h *Host) error {
		h.SetRoot(root)
		return nil
	}
}

// WithMarkup parses markup and attaches the result as the render root.
func WithMarkup(markup string) Option {
	return func(h *Host) error {
		root, err := vdom.ParseString(markup)
		if err != nil {
			return fmt.Errorf("component %s: %w", h.name, err)
		}
		h.SetRoot(root)
		return nil
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) error {
		h.logger = logger
		return nil
	}
}

// WithObservers registers observers at construction time.
func WithObservers(obs ...Observer) Option {
	return func(h *Host) error {
		h.Use(obs...)
		return nil
	}
}

// New creates a Host whose element has the given tag name. Without a root
// option the host has no render target.
func New(name string, opts ...Option) (*Host, error) {
	h := &Host{
		name:    name,
		element: vdom.El(name),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	h.logger = h.logger.With("component", name)
	return h, nil
}

// Name returns the component's tag name.
func (h *Host) Name() string {
	return h.name
}

// Element returns the host element. Fire dispatches on it.
func (h *Host) Element() *vdom.VNode {
	return h.element
}

// Root returns the render root, or nil if the host has no render target.
func (h *Host) Root() *vdom.VNode {
	return h.element.ShadowRoot()
}

// SetRoot replaces the render root. Passing nil removes the render target.
func (h *Host) SetRoot(root *vdom.VNode) {
	h.element.AttachShadow(root)
}

// Logger returns the host's logger.
func (h *Host) Logger() *slog.Logger {
	return h.logger
}

// Connected reports whether the last lifecycle transition was a successful
// Connect.
func (h *Host) Connected() bool {
	return h.connected
}

// Use appends observers. Observers run in the order they were added.
func (h *Host) Use(obs ...Observer) {
	for _, o := range obs {
		if o != nil {
			h.observers = append(h.observers, o)
		}
	}
}

// Connect runs the attach transition. Observers are invoked in order; the
// first error stops the sequence and is returned as is. Observers that ran
// before the failure are not undone, and the host does not count as
// connected.
func (h *Host) Connect(ctx context.Context) error {
	for _, o := range h.observers {
		if err := o.Attached(ctx, h); err != nil {
			h.logger.Warn("attach failed", "error", err)
			return err
		}
	}
	h.connected = true
	return nil
}

// Disconnect runs the detach transition. Every observer is invoked in order
// and failures are joined.
func (h *Host) Disconnect(ctx context.Context) error {
	h.connected = false
	var errs []error
	for _, o := range h.observers {
		if err := o.Detached(ctx, h); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		h.logger.Warn("detach failed", "error", err)
		return err
	}
	return nil
}

// On binds a listener to el.
func (h *Host) On(el *vdom.VNode, kind string, l *vdom.Listener) {
	el.AddEventListener(kind, l)
}

// Off unbinds a listener from el.
func (h *Host) Off(el *vdom.VNode, kind string, l *vdom.Listener) {
	el.RemoveEventListener(kind, l)
}

// FireOption adjusts an event created by Fire.
type FireOption func(*vdom.Event)

// WithBubbles sets whether the event bubbles (default true).
func WithBubbles(b bool) FireOption {
	return func(e *vdom.Event) { e.Bubbles = b }
}

// WithComposed sets whether the event crosses shadow roots (default true).
func WithComposed(c bool) FireOption {
	return func(e *vdom.Event) { e.Composed = c }
}

// Fire dispatches a custom event on the host element and returns the number
// of listeners that ran.
func (h *Host) Fire(kind string, detail any, opts ...FireOption) int {
	e := vdom.NewCustomEvent(kind, detail, true, true)
	for _, opt := range opts {
		opt(e)
	}
	return h.element.DispatchEvent(e)
}
