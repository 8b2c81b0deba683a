package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/compost"
	"github.com/vango-dev/compost/internal/errors"
	"github.com/vango-dev/compost/pkg/vdom"
)

// session is one websocket connection and the instance it drives. All
// dispatch happens on the read loop goroutine.
type session struct {
	bridge *Bridge
	conn   *websocket.Conn
	inst   *compost.Instance
	logger *slog.Logger

	writeMu sync.Mutex
}

func (b *Bridge) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(b.config.ReadLimit)

	s := &session{
		bridge: b,
		conn:   conn,
		logger: b.logger.With("remote", conn.RemoteAddr().String()),
	}

	b.track(s)
	defer b.untrack(s)

	inst, err := b.factory()
	if err != nil {
		s.fail(errors.New("C202").WithDetail(err.Error()).Wrap(err))
		return
	}
	s.inst = inst
	s.run(r.Context())
}

func (s *session) run(ctx context.Context) {
	root := s.inst.Root()
	if root != nil {
		vdom.AssignAllHIDs(root, vdom.NewHIDGenerator())
	}
	elements := vdom.CollectHIDs(root)

	for _, kind := range s.bridge.config.Forward {
		s.inst.On(s.inst.Element(), kind, vdom.NewListener(s.forward))
	}

	// Detach runs even when attach fails part way, so partial bindings
	// are released.
	defer func() {
		if err := s.inst.Disconnect(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("disconnect failed", "error", err)
		}
		s.logger.Debug("session closed")
	}()

	if err := s.inst.Connect(ctx); err != nil {
		s.fail(errors.New("C202").WithDetail(err.Error()).Wrap(err))
		return
	}
	s.logger.Debug("session open",
		"component", s.inst.Name(),
		"elements", len(elements),
		"interactive", vdom.CountInteractive(root, s.inst.Binder.Prefix()),
		"bindings", s.inst.Binder.Len())

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "error", err)
			}
			return
		}
		s.handle(ctx, elements, msg)
	}
}

// handle delivers one client frame to the element it addresses.
func (s *session) handle(ctx context.Context, elements map[string]*vdom.VNode, msg []byte) {
	f, err := DecodeClientFrame(msg)
	if err != nil {
		s.bridge.metrics.received("malformed")
		s.sendError(errors.FromError(err, "C200"))
		return
	}
	s.bridge.metrics.received(f.Type)

	_, span := s.bridge.tracer.Start(ctx, "compost.bridge.event", trace.WithAttributes(
		attribute.String("compost.hid", f.HID),
		attribute.String("compost.event", f.Type),
	))
	defer span.End()

	el := elements[f.HID]
	if el == nil {
		cerr := errors.New("C201").WithDetail(f.HID)
		span.SetStatus(codes.Error, cerr.Message)
		s.sendError(cerr)
		return
	}

	// Browser events stay inside the shadow root; only host events fired
	// with Composed reach the forwarding listeners.
	handled := el.DispatchEvent(vdom.NewCustomEvent(f.Type, f.Detail, true, false))
	span.SetAttributes(attribute.Int("compost.handled", handled))
	s.send(ackFrame(f, handled))
}

// forward relays a host event to the browser.
func (s *session) forward(e *vdom.Event) {
	s.send(fireFrame(e.Type, e.Detail))
}

// fail reports a fatal error and closes the connection.
func (s *session) fail(err *errors.CompostError) {
	s.logger.Warn("session failed", "error", err)
	s.sendError(err)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Code)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.bridge.config.WriteTimeout))
}

func (s *session) sendError(err *errors.CompostError) {
	s.send(errorFrame(err))
}

func (s *session) send(f ServerFrame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.logger.Error("encode frame failed", "kind", f.Kind, "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.bridge.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("write failed", "error", err)
		return
	}
	s.bridge.metrics.sent(f)
}

func (b *Bridge) track(s *session) {
	b.mu.Lock()
	b.sessions[s] = struct{}{}
	b.mu.Unlock()
	b.metrics.opened()
}

func (b *Bridge) untrack(s *session) {
	b.mu.Lock()
	delete(b.sessions, s)
	b.mu.Unlock()
	b.metrics.closed()
}

// closeSessions closes every open connection, ending their read loops.
func (b *Bridge) closeSessions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.sessions {
		s.conn.Close()
	}
}

// Sessions returns the number of open connections.
func (b *Bridge) Sessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}
