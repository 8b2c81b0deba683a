package bind

import (
	"slices"

	"github.com/vango-dev/compost/pkg/vdom"
)

// DefaultPrefix is the marker prefix: kind "click" is declared with the
// attribute "on-click".
const DefaultPrefix = vdom.MarkerPrefix

// Catalog is an ordered list of event kinds the binder recognizes. The order
// is the outer scan order. Catalog values are shared between component
// types; the helper methods return copies and never modify the receiver.
type Catalog []string

// defaultCatalog backs DefaultCatalog and the Mixin default. It is never
// handed out directly.
var defaultCatalog = Catalog{
	"abort", "blur", "cancel", "canplay", "canplaythrough", "change", "click",
	"close", "contextmenu", "cuechange", "dblclick", "drag", "dragend",
	"dragenter", "dragleave", "dragover", "dragstart", "drop",
	"durationchange", "emptied", "ended", "error", "focus", "input", "invalid",
	"keydown", "keypress", "keyup", "load", "loadeddata", "loadedmetadata",
	"loadstart", "mousedown", "mouseenter", "mouseleave", "mousemove",
	"mouseout", "mouseover", "mouseup", "mousewheel", "pause", "play",
	"playing", "progress", "ratechange", "reset", "resize", "scroll", "seeked",
	"seeking", "select", "stalled", "submit", "suspend", "timeupdate", "toggle",
	"volumechange", "waiting", "wheel", "gotpointercapture",
	"lostpointercapture", "pointerdown", "pointermove", "pointerup",
	"pointercancel", "pointerover", "pointerout", "pointerenter",
	"pointerleave", "beforecopy", "beforecut", "beforepaste", "copy", "cut",
	"paste", "search", "selectstart",
}

// DefaultCatalog returns the platform event list every component type
// starts from unless it is given its own. Each call returns a fresh copy.
func DefaultCatalog() Catalog {
	return slices.Clone(defaultCatalog)
}

// Contains reports whether kind is in the catalog.
func (c Catalog) Contains(kind string) bool {
	for _, k := range c {
		if k == kind {
			return true
		}
	}
	return false
}

// With returns a copy of c with the given kinds appended, skipping kinds
// already present.
func (c Catalog) With(kinds ...string) Catalog {
	out := make(Catalog, len(c), len(c)+len(kinds))
	copy(out, c)
	for _, k := range kinds {
		if k != "" && !out.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// Without returns a copy of c with the given kinds removed.
func (c Catalog) Without(kinds ...string) Catalog {
	drop := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		drop[k] = true
	}
	out := make(Catalog, 0, len(c))
	for _, k := range c {
		if !drop[k] {
			out = append(out, k)
		}
	}
	return out
}

// Attrs returns the marker attribute name for every kind, in order.
func (c Catalog) Attrs(prefix string) []string {
	out := make([]string, len(c))
	for i, k := range c {
		out[i] = prefix + k
	}
	return out
}
