package component

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/compost/pkg/vdom"
)

// recorder logs lifecycle calls into a shared trace.
type recorder struct {
	name  string
	trace *[]string
	err   error
}

func (r recorder) Attached(context.Context, *Host) error {
	*r.trace = append(*r.trace, r.name+".attach")
	return r.err
}

func (r recorder) Detached(context.Context, *Host) error {
	*r.trace = append(*r.trace, r.name+".detach")
	return r.err
}

func TestNewWithoutRoot(t *testing.T) {
	h, err := New("x-empty")
	if err != nil {
		t.Fatal(err)
	}
	if h.Root() != nil {
		t.Error("host without root option should have no render target")
	}
	if h.Element().Tag != "x-empty" || h.Name() != "x-empty" {
		t.Errorf("element tag = %q", h.Element().Tag)
	}
	if h.Logger() == nil {
		t.Error("logger should default")
	}
}

func TestWithMarkup(t *testing.T) {
	h, err := New("x-form", WithMarkup(`<button on-click="save">Save</button>`))
	if err != nil {
		t.Fatal(err)
	}
	root := h.Root()
	if root == nil || root.Host() != h.Element() {
		t.Fatal("markup should become the shadow root of the host element")
	}
	if len(vdom.QuerySelectorAll(root, "on-click")) != 1 {
		t.Error("parsed markup missing marker")
	}
}

func TestObserverOrder(t *testing.T) {
	var trace []string
	h, _ := New("x-order", WithObservers(recorder{name: "base", trace: &trace}))
	h.Use(recorder{name: "mixin", trace: &trace}, nil)
	ctx := context.Background()

	if err := h.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	if !h.Connected() {
		t.Error("Connected should be true after Connect")
	}
	if err := h.Disconnect(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"base.attach", "mixin.attach", "base.detach", "mixin.detach"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %q, want %q", i, trace[i], want[i])
		}
	}
}

func TestConnectStopsAtFirstError(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	h, _ := New("x-fail")
	h.Use(
		recorder{name: "a", trace: &trace},
		recorder{name: "b", trace: &trace, err: boom},
		recorder{name: "c", trace: &trace},
	)

	if err := h.Connect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Connect err = %v, want boom", err)
	}
	if len(trace) != 2 {
		t.Errorf("trace = %v, observers after the failure must not run", trace)
	}
	if h.Connected() {
		t.Error("Connected should be false after a failed Connect")
	}
}

func TestDisconnectJoinsErrors(t *testing.T) {
	var trace []string
	e1, e2 := errors.New("one"), errors.New("two")
	h, _ := New("x-fail")
	h.Use(
		recorder{name: "a", trace: &trace, err: e1},
		recorder{name: "b", trace: &trace},
		recorder{name: "c", trace: &trace, err: e2},
	)

	err := h.Disconnect(context.Background())
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Errorf("Disconnect err = %v, want both errors", err)
	}
	if len(trace) != 3 {
		t.Errorf("every observer should run on detach, trace = %v", trace)
	}
}

func TestHooksAdapter(t *testing.T) {
	attached := 0
	h, _ := New("x-hooks", WithObservers(
		Hooks{OnAttach: func(context.Context, *Host) error { attached++; return nil }},
	))
	ctx := context.Background()

	h.Connect(ctx)
	if err := h.Disconnect(ctx); err != nil {
		t.Errorf("nil OnDetach should be a no-op, got %v", err)
	}
	if attached != 1 {
		t.Errorf("attached = %d, want 1", attached)
	}
}

func TestOnOff(t *testing.T) {
	h, _ := New("x-btn", WithRoot(vdom.Fragment(vdom.Button())))
	btn := h.Root().Children[0]
	calls := 0
	l := vdom.NewListener(func(*vdom.Event) { calls++ })

	h.On(btn, "click", l)
	btn.DispatchEvent(vdom.NewEvent("click"))
	h.Off(btn, "click", l)
	btn.DispatchEvent(vdom.NewEvent("click"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFire(t *testing.T) {
	page := vdom.Div()
	h, _ := New("x-card")
	page.AppendChild(h.Element())

	var got *vdom.Event
	page.AddEventListener("selected", vdom.NewListener(func(e *vdom.Event) { got = e }))

	if n := h.Fire("selected", 42); n != 1 {
		t.Errorf("Fire invoked %d listeners, want 1", n)
	}
	if got == nil || got.Detail != 42 || got.Target != h.Element() {
		t.Fatalf("event = %+v", got)
	}
	if !got.Bubbles || !got.Composed {
		t.Error("Fire defaults to bubbling, composed events")
	}

	got = nil
	h.Fire("selected", nil, WithBubbles(false), WithComposed(false))
	if got != nil {
		t.Error("non-bubbling event reached the page")
	}
}
