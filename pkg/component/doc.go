// Package component provides the Host a UI component instance runs in.
//
// A Host owns a host element, an optional shadow render root and an ordered
// list of lifecycle observers. Connect and Disconnect are the attach and
// detach transitions: each runs the observers in registration order, so
// behavior registered first acts as the base that later observers extend.
//
//	h, err := component.New("x-counter",
//	    component.WithMarkup(`<button on-click="inc">+</button>`),
//	)
//	h.Use(component.Hooks{OnAttach: startTicker, OnDetach: stopTicker})
//	h.Use(bind.New(bind.Methods(counter)))
//
//	if err := h.Connect(ctx); err != nil { ... }
//	defer h.Disconnect(ctx)
//
// Host is not safe for concurrent use: Connect, Disconnect and event
// dispatch are expected to run on the goroutine that owns the instance.
package component
