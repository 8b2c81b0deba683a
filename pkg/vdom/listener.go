package vdom

// Event is delivered to listeners registered on a VNode.
type Event struct {
	Type          string
	Target        *VNode // node the event was dispatched on
	CurrentTarget *VNode // node whose listeners are running
	Detail        any
	Bubbles       bool
	Composed      bool // crosses shadow root boundaries while bubbling

	stopped bool
}

// NewEvent creates a non-bubbling event of the given type.
func NewEvent(kind string) *Event {
	return &Event{Type: kind}
}

// NewCustomEvent creates an event carrying an application payload.
func NewCustomEvent(kind string, detail any, bubbles, composed bool) *Event {
	return &Event{
		Type:     kind,
		Detail:   detail,
		Bubbles:  bubbles,
		Composed: composed,
	}
}

// StopPropagation prevents the event from reaching further nodes. Listeners
// on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener is a registered event callback. Listeners are compared by
// pointer, so the value passed to AddEventListener must be kept to remove it.
type Listener struct {
	fn func(*Event)
}

// NewListener wraps fn in a Listener.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the callback.
func (l *Listener) Handle(e *Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(e)
}

// AddEventListener registers l for events of the given kind. Registering the
// same listener twice results in two invocations per event.
func (v *VNode) AddEventListener(kind string, l *Listener) {
	if l == nil {
		return
	}
	if v.listeners == nil {
		v.listeners = make(map[string][]*Listener)
	}
	v.listeners[kind] = append(v.listeners[kind], l)
}

// RemoveEventListener removes one registration of l for kind. Removing a
// listener that is not registered does nothing.
func (v *VNode) RemoveEventListener(kind string, l *Listener) {
	list := v.listeners[kind]
	for i, existing := range list {
		if existing == l {
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(v.listeners, kind)
			} else {
				v.listeners[kind] = list
			}
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for kind.
func (v *VNode) ListenerCount(kind string) int {
	if v == nil {
		return 0
	}
	return len(v.listeners[kind])
}

// HasListeners reports whether any listener of any kind is registered.
func (v *VNode) HasListeners() bool {
	return v != nil && len(v.listeners) > 0
}

// DispatchEvent delivers e to v and, when e.Bubbles is set, to each ancestor.
// A composed event continues from a shadow root to its host element.
// It returns the number of listeners invoked.
func (v *VNode) DispatchEvent(e *Event) int {
	if v == nil || e == nil {
		return 0
	}
	if e.Target == nil {
		e.Target = v
	}

	invoked := 0
	for n := v; n != nil; n = n.next(e) {
		e.CurrentTarget = n
		// Snapshot so listeners may add or remove registrations safely.
		list := append([]*Listener(nil), n.listeners[e.Type]...)
		for _, l := range list {
			l.Handle(e)
			invoked++
		}
		if !e.Bubbles || e.stopped {
			break
		}
	}
	e.CurrentTarget = nil
	return invoked
}

// next returns the node an event propagates to after v.
func (v *VNode) next(e *Event) *VNode {
	if v.parent != nil {
		return v.parent
	}
	if e.Composed {
		return v.host
	}
	return nil
}
