package bind

import (
	"errors"
	"testing"

	"github.com/vango-dev/compost/pkg/vdom"
)

type namedHandler func(*vdom.Event)

type panel struct {
	opened int
	Toggle namedHandler
	Any    any
	hidden func(*vdom.Event)
}

func (p *panel) Open(*vdom.Event) { p.opened++ }

func TestMethodsResolvesExactAndExportedNames(t *testing.T) {
	p := &panel{}
	r := Methods(p)

	for _, name := range []string{"Open", "open"} {
		fn, err := r.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		fn(nil)
	}
	if p.opened != 2 {
		t.Errorf("opened = %d, want 2", p.opened)
	}
}

func TestMethodsBindsReceiver(t *testing.T) {
	a, b := &panel{}, &panel{}
	fn, err := Methods(a).Resolve("open")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Methods(b).Resolve("open"); err != nil {
		t.Fatal(err)
	}

	fn(vdom.NewEvent("click"))
	if a.opened != 1 || b.opened != 0 {
		t.Errorf("a.opened=%d b.opened=%d, handler must act on its own receiver", a.opened, b.opened)
	}
}

func TestMethodsFuncFields(t *testing.T) {
	toggled := 0
	anyCalled := 0
	p := &panel{
		Toggle: func(*vdom.Event) { toggled++ },
		Any:    func() { anyCalled++ },
		hidden: func(*vdom.Event) {},
	}
	r := Methods(p)

	fn, err := r.Resolve("toggle")
	if err != nil {
		t.Fatalf("named func field: %v", err)
	}
	fn(nil)
	if toggled != 1 {
		t.Error("toggle field not called")
	}

	fn, err = r.Resolve("any")
	if err != nil {
		t.Fatalf("interface-held func: %v", err)
	}
	fn(nil)
	if anyCalled != 1 {
		t.Error("any field not called")
	}

	if _, err := r.Resolve("hidden"); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("unexported field should not resolve, got %v", err)
	}
}

func TestMethodsNilReceiver(t *testing.T) {
	if _, err := Methods(nil).Resolve("open"); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("err = %v, want ErrHandlerNotFound", err)
	}
}

func TestHandlers(t *testing.T) {
	called := false
	h := Handlers{
		"go":  func(*vdom.Event) { called = true },
		"nil": nil,
	}

	fn, err := h.Resolve("go")
	if err != nil {
		t.Fatal(err)
	}
	fn(nil)
	if !called {
		t.Error("handler not called")
	}

	tests := []struct {
		name string
		want error
	}{
		{"", ErrEmptyHandler},
		{"missing", ErrHandlerNotFound},
		{"nil", ErrHandlerNotCallable},
	}
	for _, tt := range tests {
		if _, err := h.Resolve(tt.name); !errors.Is(err, tt.want) {
			t.Errorf("Resolve(%q) = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestChain(t *testing.T) {
	p := &panel{}
	r := Chain(
		Handlers{"close": func(*vdom.Event) {}},
		Methods(p),
	)

	if _, err := r.Resolve("close"); err != nil {
		t.Errorf("first resolver: %v", err)
	}
	if _, err := r.Resolve("open"); err != nil {
		t.Errorf("fallback resolver: %v", err)
	}
	if _, err := r.Resolve("nothing"); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("err = %v, want ErrHandlerNotFound", err)
	}
	if _, err := r.Resolve(""); !errors.Is(err, ErrEmptyHandler) {
		t.Errorf("err = %v, want ErrEmptyHandler", err)
	}

	stop := Chain(Handlers{"x": nil}, Handlers{"x": func(*vdom.Event) {}})
	if _, err := stop.Resolve("x"); !errors.Is(err, ErrHandlerNotCallable) {
		t.Errorf("not-callable should stop the chain, got %v", err)
	}
}
