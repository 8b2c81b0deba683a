package bind

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	cerrors "github.com/vango-dev/compost/internal/errors"
	"github.com/vango-dev/compost/pkg/component"
	"github.com/vango-dev/compost/pkg/vdom"
)

const tracerName = "github.com/vango-dev/compost/pkg/bind"

// State is the binding state of one host instance.
type State uint8

const (
	Unbound State = iota // initial, and after every Detach
	Bound                // while at least one binding is registered, or after a complete Attach
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	default:
		return "unknown"
	}
}

// Record is one active declarative listener.
type Record struct {
	Element *vdom.VNode // borrowed from the render tree
	Kind    string
	Name    string // handler name from the marker attribute
	Handler *vdom.Listener
}

// Host is the part of a component instance the mixin works against.
// *component.Host satisfies it.
type Host interface {
	Root() *vdom.VNode
	On(el *vdom.VNode, kind string, l *vdom.Listener)
	Off(el *vdom.VNode, kind string, l *vdom.Listener)
}

// Mixin binds marker attributes to handlers when its host attaches and
// removes them when it detaches. A Mixin holds the registry of one host
// instance and must not be shared between instances.
type Mixin struct {
	resolver Resolver
	catalog  Catalog
	prefix   string
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer

	records []Record
	state   State
}

// Option configures a Mixin.
type Option func(*Mixin)

// WithCatalog replaces the event kinds the mixin scans for.
func WithCatalog(c Catalog) Option {
	return func(m *Mixin) {
		m.catalog = c
	}
}

// WithPrefix replaces the marker prefix.
func WithPrefix(prefix string) Option {
	return func(m *Mixin) {
		m.prefix = prefix
	}
}

// WithLogger sets the logger. By default the host's logger is used when the
// host has one, and slog.Default() otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mixin) {
		m.logger = logger
	}
}

// WithMetrics records binding counts in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Mixin) {
		m.metrics = metrics
	}
}

// WithTracer sets the tracer. Default: the global OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Mixin) {
		m.tracer = tracer
	}
}

// New creates a Mixin resolving handler names with resolver.
func New(resolver Resolver, opts ...Option) *Mixin {
	m := &Mixin{
		resolver: resolver,
		catalog:  defaultCatalog,
		prefix:   DefaultPrefix,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tracer == nil {
		m.tracer = otel.Tracer(tracerName)
	}
	return m
}

// State returns the current binding state.
func (m *Mixin) State() State {
	return m.state
}

// Len returns the number of registered bindings.
func (m *Mixin) Len() int {
	return len(m.records)
}

// Records returns a snapshot of the registry in bind order.
func (m *Mixin) Records() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Catalog returns a copy of the event kinds the mixin scans for.
func (m *Mixin) Catalog() Catalog {
	return slices.Clone(m.catalog)
}

// Prefix returns the marker attribute prefix.
func (m *Mixin) Prefix() string {
	return m.prefix
}

// Attached implements component.Observer.
func (m *Mixin) Attached(ctx context.Context, h *component.Host) error {
	return m.Attach(ctx, h)
}

// Detached implements component.Observer.
func (m *Mixin) Detached(ctx context.Context, h *component.Host) error {
	return m.Detach(ctx, h)
}

// Attach scans the host's render root and binds every marker attribute.
//
// A host without a render root is left unbound and Attach returns nil.
// Resolution failures are returned immediately; bindings made earlier in
// the same scan stay registered and attached, so the mixin is bound if
// there are any, and a later Detach removes them. Attaching twice without a
// Detach in between binds everything twice.
func (m *Mixin) Attach(ctx context.Context, h Host) error {
	logger := m.loggerFor(h)
	root := h.Root()
	if root == nil {
		logger.Debug("no render root, nothing to bind")
		return nil
	}

	_, span := m.tracer.Start(ctx, "compost.bind.attach", trace.WithAttributes(hostAttrs(h)...))
	defer span.End()

	for _, match := range Scan(root, m.catalog, m.prefix) {
		fn, err := m.resolver.Resolve(match.Handler)
		if err != nil {
			rerr := resolveError(match, err)
			m.metrics.failed(err)
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Message)
			logger.Warn("cannot bind handler",
				"kind", match.Kind,
				"handler", match.Handler,
				"element", match.Element.Path(),
				"error", err)
			return rerr
		}

		rec := Record{
			Element: match.Element,
			Kind:    match.Kind,
			Name:    match.Handler,
			Handler: vdom.NewListener(fn),
		}
		m.records = append(m.records, rec)
		m.state = Bound
		h.On(rec.Element, rec.Kind, rec.Handler)
		m.metrics.bound(rec.Kind)

		logger.Debug("bound handler",
			"kind", rec.Kind,
			"handler", rec.Name,
			"element", rec.Element.Path())
	}

	m.state = Bound
	span.SetAttributes(attribute.Int("compost.bindings", len(m.records)))
	return nil
}

// Detach removes every registered binding, in registry order, and clears
// the registry. Detaching an unbound mixin does nothing.
func (m *Mixin) Detach(ctx context.Context, h Host) error {
	if len(m.records) == 0 {
		m.state = Unbound
		return nil
	}

	_, span := m.tracer.Start(ctx, "compost.bind.detach", trace.WithAttributes(hostAttrs(h)...))
	defer span.End()

	for _, rec := range m.records {
		h.Off(rec.Element, rec.Kind, rec.Handler)
		m.metrics.unbound(rec.Kind)
	}
	span.SetAttributes(attribute.Int("compost.bindings", len(m.records)))
	m.loggerFor(h).Debug("unbound handlers", "count", len(m.records))

	m.records = nil
	m.state = Unbound
	return nil
}

func (m *Mixin) loggerFor(h Host) *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	if lh, ok := h.(interface{ Logger() *slog.Logger }); ok {
		if l := lh.Logger(); l != nil {
			return l
		}
	}
	return slog.Default()
}

func hostAttrs(h Host) []attribute.KeyValue {
	if nh, ok := h.(interface{ Name() string }); ok {
		return []attribute.KeyValue{attribute.String("compost.component", nh.Name())}
	}
	return nil
}

// resolveError turns a resolver failure into a coded error naming the
// offending element and attribute.
func resolveError(match Match, err error) *cerrors.CompostError {
	code := "C002"
	switch {
	case errors.Is(err, ErrEmptyHandler):
		code = "C001"
	case errors.Is(err, ErrHandlerNotCallable):
		code = "C003"
	}
	return cerrors.New(code).
		WithDetailf("<%s %s=%q> at %s", match.Element.Tag, match.Attr, match.Handler, match.Element.Path()).
		Wrap(err)
}
