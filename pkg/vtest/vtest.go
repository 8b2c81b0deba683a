package vtest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/compost"
	"github.com/vango-dev/compost/pkg/vdom"
)

// Mounted is a connected component instance under test.
type Mounted struct {
	*compost.Instance
	t *testing.T
}

// Mount creates an instance of def for receiver and connects it. The test
// fails immediately if either step fails. The instance is disconnected
// when the test ends.
//
// Example:
//
//	m := vtest.Mount(t, counterType, &Counter{})
//	m.Click("inc")
func Mount(t *testing.T, def *compost.Definition, receiver any) *Mounted {
	t.Helper()
	inst, err := def.New(receiver)
	if err != nil {
		t.Fatalf("vtest: new %s: %v", def.Name, err)
	}
	if err := inst.Connect(context.Background()); err != nil {
		t.Fatalf("vtest: connect %s: %v", def.Name, err)
	}
	t.Cleanup(func() {
		if err := inst.Disconnect(context.Background()); err != nil {
			t.Errorf("vtest: disconnect %s: %v", def.Name, err)
		}
	})
	return &Mounted{Instance: inst, t: t}
}

// ByID returns the element with the given id attribute in the render tree.
// The test fails if there is none.
func (m *Mounted) ByID(id string) *vdom.VNode {
	m.t.Helper()
	var found *vdom.VNode
	vdom.Walk(m.Root(), func(n *vdom.VNode) bool {
		if found != nil {
			return false
		}
		if v, ok := n.GetAttr("id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		m.t.Fatalf("vtest: no element with id %q", id)
	}
	return found
}

// Dispatch delivers a bubbling event to the element with the given id and
// returns the number of listeners that ran.
//
// Example:
//
//	m.Dispatch("title", "input", map[string]any{"value": "milk"})
func (m *Mounted) Dispatch(id, kind string, detail any) int {
	m.t.Helper()
	return m.ByID(id).DispatchEvent(vdom.NewCustomEvent(kind, detail, true, false))
}

// Click is Dispatch for a click without detail.
func (m *Mounted) Click(id string) int {
	m.t.Helper()
	return m.Dispatch(id, "click", nil)
}

// ExpectBound asserts the number of active bindings for an event kind.
//
// Example:
//
//	vtest.ExpectBound(t, m, "click", 2)
func ExpectBound(t *testing.T, m *Mounted, kind string, want int) {
	t.Helper()
	got := 0
	for _, rec := range m.Binder.Records() {
		if rec.Kind == kind {
			got++
		}
	}
	if got != want {
		t.Errorf("expected %d %s bindings, got %d", want, kind, got)
	}
}

// RenderToString renders a VNode and returns the HTML string, or "" if it
// cannot be rendered.
func RenderToString(node *vdom.VNode) string {
	html, err := vdom.RenderString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, m.Root(), "3 items left")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, m.Root(), "on-click", "inc")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
