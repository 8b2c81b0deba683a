package compost

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/compost/pkg/bind"
	"github.com/vango-dev/compost/pkg/component"
	"github.com/vango-dev/compost/pkg/vdom"
)

const todoMarkup = `
<form on-submit="add">
  <input name="title" on-input="typed" on-keydown="typed">
  <button type="submit">Add</button>
</form>
<ul on-click="toggle"></ul>`

type todo struct {
	inst *Instance

	adds, inputs, toggles int

	attachCalls, detachCalls   int
	boundAtAttach, boundAtDetach int
}

func (t *todo) Add(*vdom.Event)    { t.adds++ }
func (t *todo) Typed(*vdom.Event)  { t.inputs++ }
func (t *todo) Toggle(*vdom.Event) { t.toggles++ }

// Attached and Detached make todo a lifecycle observer in its own right,
// playing the part of inherited connect/disconnect behavior.
func (t *todo) Attached(context.Context, *component.Host) error {
	t.attachCalls++
	t.boundAtAttach = t.inst.Binder.Len()
	return nil
}

func (t *todo) Detached(context.Context, *component.Host) error {
	t.detachCalls++
	t.boundAtDetach = t.inst.Binder.Len()
	return nil
}

func newTodo(t *testing.T, def *Definition) *todo {
	t.Helper()
	td := &todo{}
	inst, err := def.New(td)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	td.inst = inst
	return td
}

func TestInstanceLifecycle(t *testing.T) {
	td := newTodo(t, Define("x-todo", todoMarkup))
	inst := td.inst
	ctx := context.Background()

	if err := inst.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if got := inst.Binder.Len(); got != 4 {
		t.Fatalf("bindings = %d, want 4", got)
	}

	input := vdom.QuerySelectorAll(inst.Root(), "name")[0]
	input.DispatchEvent(vdom.NewEvent("input"))
	input.DispatchEvent(vdom.NewEvent("keydown"))
	if td.inputs != 2 {
		t.Errorf("inputs = %d, want 2", td.inputs)
	}

	if err := inst.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	input.DispatchEvent(vdom.NewEvent("input"))
	if td.inputs != 2 {
		t.Error("handler ran after disconnect")
	}
}

func TestBaseHooksRunFirstAndOnce(t *testing.T) {
	td := newTodo(t, Define("x-todo", todoMarkup))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := td.inst.Connect(ctx); err != nil {
			t.Fatal(err)
		}
		if err := td.inst.Disconnect(ctx); err != nil {
			t.Fatal(err)
		}
	}

	if td.attachCalls != 3 || td.detachCalls != 3 {
		t.Errorf("base hooks ran %d/%d times, want 3/3", td.attachCalls, td.detachCalls)
	}
	if td.boundAtAttach != 0 {
		t.Errorf("base attach saw %d bindings, should run before scanning", td.boundAtAttach)
	}
	if td.boundAtDetach != 4 {
		t.Errorf("base detach saw %d bindings, should run before teardown", td.boundAtDetach)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	def := Define("x-todo", todoMarkup)
	a, b := newTodo(t, def), newTodo(t, def)
	ctx := context.Background()

	a.inst.Connect(ctx)
	b.inst.Connect(ctx)
	if a.inst.Root() == b.inst.Root() {
		t.Fatal("instances must not share a render tree")
	}

	vdom.QuerySelectorAll(a.inst.Root(), "on-click")[0].DispatchEvent(vdom.NewEvent("click"))
	if a.toggles != 1 || b.toggles != 0 {
		t.Errorf("a.toggles=%d b.toggles=%d", a.toggles, b.toggles)
	}

	a.inst.Disconnect(ctx)
	if b.inst.Binder.Len() != 4 {
		t.Error("disconnecting one instance must not touch another")
	}
}

func TestTypeCatalogOverride(t *testing.T) {
	def := Define("x-todo", todoMarkup,
		WithCatalog(bind.DefaultCatalog().Without("keydown", "input")))
	td := newTodo(t, def)

	if err := td.inst.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := td.inst.Binder.Len(); got != 2 {
		t.Errorf("bindings = %d, want 2 (submit and click)", got)
	}
}

func TestNoMarkupMeansNoRenderTarget(t *testing.T) {
	td := newTodo(t, Define("x-bare", ""))

	if err := td.inst.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if td.inst.Binder.State() != bind.Unbound {
		t.Errorf("State = %v, want unbound", td.inst.Binder.State())
	}
}

func TestUnknownHandlerFailsConnect(t *testing.T) {
	td := newTodo(t, Define("x-broken", `<button on-click="explode"></button>`))

	err := td.inst.Connect(context.Background())
	if !errors.Is(err, bind.ErrHandlerNotFound) {
		t.Errorf("Connect err = %v, want ErrHandlerNotFound", err)
	}
	if td.attachCalls != 1 || td.boundAtAttach != 0 {
		t.Errorf("base hook ran %d times with %d bindings, want once with none", td.attachCalls, td.boundAtAttach)
	}
	if td.inst.Connected() || td.inst.Binder.State() != bind.Unbound {
		t.Errorf("connected=%v state=%v after failed connect", td.inst.Connected(), td.inst.Binder.State())
	}

	if err := td.inst.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect: %v", err)
	}
	if td.detachCalls != 1 {
		t.Errorf("detach hook ran %d times, want 1", td.detachCalls)
	}
}

func TestResolverReceiver(t *testing.T) {
	called := false
	def := Define("x-map", `<a on-click="go">go</a>`)
	inst, err := def.New(bind.Handlers{"go": func(*vdom.Event) { called = true }})
	if err != nil {
		t.Fatal(err)
	}
	if err := inst.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	vdom.QuerySelectorAll(inst.Root(), "on-click")[0].DispatchEvent(vdom.NewEvent("click"))
	if !called {
		t.Error("explicit handler table not used")
	}
}

func TestSanitizedMarkup(t *testing.T) {
	def := Define("x-untrusted",
		`<form on-submit="add"><button on-click="toggle" onclick="steal()">Go</button></form><script>alert(1)</script>`,
		WithSanitize())

	for _, bad := range []string{"onclick", "<script", "alert"} {
		if strings.Contains(def.Markup, bad) {
			t.Errorf("sanitized markup still contains %q: %s", bad, def.Markup)
		}
	}
	for _, kept := range []string{`on-submit="add"`, `on-click="toggle"`} {
		if !strings.Contains(def.Markup, kept) {
			t.Errorf("sanitized markup lost %q: %s", kept, def.Markup)
		}
	}

	td := newTodo(t, def)
	if err := td.inst.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := td.inst.Binder.Len(); got != 2 {
		t.Errorf("bindings = %d, want 2", got)
	}
}

func TestSanitizeKeepsCustomPrefix(t *testing.T) {
	def := Define("x-custom", `<button x-click="go" on-click="other">go</button>`,
		WithSanitize(), WithPrefix("x-"), WithCatalog(bind.Catalog{"click"}))

	if !strings.Contains(def.Markup, `x-click="go"`) {
		t.Errorf("custom marker dropped: %s", def.Markup)
	}
	if strings.Contains(def.Markup, "on-click") {
		t.Errorf("marker outside the type's prefix kept: %s", def.Markup)
	}
}
