// Package compost defines UI component types whose markup declares its own
// event bindings.
//
// A Definition is a component type: a tag name, a template and the event
// catalog its instances scan for. Each call to New produces an independent
// instance with its own render tree and binding registry.
//
//	type Counter struct{ n int }
//
//	func (c *Counter) Inc(*vdom.Event) { c.n++ }
//
//	var counterType = compost.Define("x-counter",
//	    `<button on-click="inc">+</button>`)
//
//	inst, err := counterType.New(&Counter{})
//	if err := inst.Connect(ctx); err != nil { ... }
//	defer inst.Disconnect(ctx)
//
// If the receiver implements component.Observer, its Attached and Detached
// methods run before the binding step, on every attach and detach.
package compost

import (
	"log/slog"

	"github.com/vango-dev/compost/pkg/bind"
	"github.com/vango-dev/compost/pkg/component"
)

// Definition is the per-type configuration shared by every instance.
type Definition struct {
	// Name is the host element tag name.
	Name string

	// Markup is the template rendered into each instance's shadow root.
	// Empty markup means instances have no render target.
	Markup string

	// Catalog lists the event kinds instances scan for.
	// Default: bind.DefaultCatalog()
	Catalog bind.Catalog

	// Prefix is the marker attribute prefix. Default: bind.DefaultPrefix
	Prefix string

	// Metrics, if set, is shared by every instance's binder.
	Metrics *bind.Metrics

	// Logger is passed to every instance. If nil, slog.Default() is used.
	Logger *slog.Logger

	sanitize bool
}

// DefineOption configures a Definition.
type DefineOption func(*Definition)

// WithCatalog gives the type its own event catalog.
func WithCatalog(c bind.Catalog) DefineOption {
	return func(d *Definition) {
		d.Catalog = c
	}
}

// WithPrefix changes the marker attribute prefix for the type.
func WithPrefix(prefix string) DefineOption {
	return func(d *Definition) {
		d.Prefix = prefix
	}
}

// WithMetrics records binding metrics for every instance.
func WithMetrics(m *bind.Metrics) DefineOption {
	return func(d *Definition) {
		d.Metrics = m
	}
}

// WithLogger sets the logger handed to instances.
func WithLogger(logger *slog.Logger) DefineOption {
	return func(d *Definition) {
		d.Logger = logger
	}
}

// WithSanitize strips scripts, styles and native inline handlers from the
// markup when the type is defined. Marker attributes for the type's final
// catalog and prefix are kept, whatever the option order.
func WithSanitize() DefineOption {
	return func(d *Definition) {
		d.sanitize = true
	}
}

// Define creates a component type.
func Define(name, markup string, opts ...DefineOption) *Definition {
	d := &Definition{
		Name:    name,
		Markup:  markup,
		Catalog: bind.DefaultCatalog(),
		Prefix:  bind.DefaultPrefix,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sanitize && d.Markup != "" {
		d.Markup = SanitizeMarkup(d.Markup, d.Catalog, d.Prefix)
	}
	return d
}

// Instance is one live component: its host and the binder that owns its
// registry.
type Instance struct {
	*component.Host
	Binder *bind.Mixin
}

// New creates an instance. Handlers are resolved against receiver: directly
// if it implements bind.Resolver, otherwise by method and field name.
func (d *Definition) New(receiver any, opts ...component.Option) (*Instance, error) {
	hostOpts := []component.Option{component.WithLogger(d.Logger)}
	if d.Markup != "" {
		hostOpts = append(hostOpts, component.WithMarkup(d.Markup))
	}
	hostOpts = append(hostOpts, opts...)

	h, err := component.New(d.Name, hostOpts...)
	if err != nil {
		return nil, err
	}

	if base, ok := receiver.(component.Observer); ok {
		h.Use(base)
	}

	resolver, ok := receiver.(bind.Resolver)
	if !ok {
		resolver = bind.Methods(receiver)
	}
	binder := bind.New(resolver,
		bind.WithCatalog(d.Catalog),
		bind.WithPrefix(d.Prefix),
		bind.WithMetrics(d.Metrics),
	)
	h.Use(binder)

	return &Instance{Host: h, Binder: binder}, nil
}
