// Package bridge serves a component over HTTP and delivers browser events to
// a live Go instance of it.
//
// Every websocket connection gets its own instance from the Factory. The
// instance is connected when the socket opens and disconnected when it
// closes, so its declarative bindings live exactly as long as the page.
//
// # Routes
//
//	GET /         page with the rendered markup and a small inline client
//	GET /ws       websocket endpoint (Config.WSPath)
//	GET /healthz  liveness probe
//	GET /metrics  Prometheus metrics
//
// # Frames
//
// Frames are JSON text messages. The client sends one frame per DOM event:
//
//	{"hid": "h3", "type": "click", "detail": {"value": "milk"}}
//
// The server answers each with an ack or an error, and forwards host events
// whose kind is listed in Config.Forward:
//
//	{"kind": "ack", "hid": "h3", "type": "click", "handled": 1}
//	{"kind": "error", "code": "C201", "error": "C201: Unknown hydration ID: h9"}
//	{"kind": "fire", "type": "saved", "detail": {"id": 7}}
//
// Element addressing relies on hydration IDs being assigned in document
// order: the page and every live instance are built from the same markup,
// so the same element gets the same ID on both sides.
package bridge
