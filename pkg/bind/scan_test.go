package bind

import (
	"errors"
	"testing"

	"github.com/vango-dev/compost/pkg/vdom"
)

func TestScanOrder(t *testing.T) {
	root, err := vdom.ParseString(`
		<div id="a" on-keydown="k1" on-click="c1"></div>
		<section>
			<button id="b" on-click="c2"></button>
			<input id="c" on-keydown="k2" on-input="i1">
		</section>`)
	if err != nil {
		t.Fatal(err)
	}

	got := Scan(root, DefaultCatalog(), DefaultPrefix)

	// Catalog order outer (click < input < keydown), document order inner.
	want := []struct{ kind, handler, id string }{
		{"click", "c1", "a"},
		{"click", "c2", "b"},
		{"input", "i1", "c"},
		{"keydown", "k1", "a"},
		{"keydown", "k2", "c"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, w := range want {
		id, _ := got[i].Element.GetAttr("id")
		if got[i].Kind != w.kind || got[i].Handler != w.handler || id != w.id {
			t.Errorf("match %d = %s/%s/%s, want %s/%s/%s",
				i, got[i].Kind, got[i].Handler, id, w.kind, w.handler, w.id)
		}
		if got[i].Attr != "on-"+w.kind {
			t.Errorf("match %d attr = %q", i, got[i].Attr)
		}
	}
}

func TestScanNilRoot(t *testing.T) {
	if got := Scan(nil, DefaultCatalog(), DefaultPrefix); got != nil {
		t.Errorf("Scan(nil) = %v, want nil", got)
	}
}

func TestScanEmptyValueIsAMatch(t *testing.T) {
	root := vdom.Fragment(vdom.Button(vdom.AttrOf("on-click", "")))
	got := Scan(root, DefaultCatalog(), DefaultPrefix)
	if len(got) != 1 || got[0].Handler != "" {
		t.Errorf("empty marker should still be scanned, got %v", got)
	}
}

func TestCheck(t *testing.T) {
	root, err := vdom.ParseString(`
		<button on-click="save"></button>
		<input on-input="" on-change="nope">`)
	if err != nil {
		t.Fatal(err)
	}

	matches := Scan(root, DefaultCatalog(), DefaultPrefix)
	errs := Check(matches, Handlers{"save": func(*vdom.Event) {}})

	// change < click < input in catalog order.
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], ErrHandlerNotFound) {
		t.Errorf("errs[0] = %v, want ErrHandlerNotFound", errs[0])
	}
	if !errors.Is(errs[1], ErrEmptyHandler) {
		t.Errorf("errs[1] = %v, want ErrEmptyHandler", errs[1])
	}
}
