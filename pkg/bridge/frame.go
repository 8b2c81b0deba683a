package bridge

import (
	"encoding/json"

	"github.com/vango-dev/compost/internal/errors"
)

// Frame kinds sent by the server.
const (
	KindAck   = "ack"
	KindError = "error"
	KindFire  = "fire"
)

// ClientFrame is a DOM event reported by the browser.
type ClientFrame struct {
	HID    string `json:"hid"`
	Type   string `json:"type"`
	Detail any    `json:"detail,omitempty"`
}

// ServerFrame is a message sent to the browser.
type ServerFrame struct {
	Kind    string `json:"kind"`
	HID     string `json:"hid,omitempty"`
	Type    string `json:"type,omitempty"`
	Detail  any    `json:"detail,omitempty"`
	Handled int    `json:"handled,omitempty"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DecodeClientFrame parses and checks one client frame.
func DecodeClientFrame(data []byte) (ClientFrame, error) {
	var f ClientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return f, errors.New("C200").Wrap(err)
	}
	switch {
	case f.HID == "":
		return f, errors.New("C200").WithDetail("missing hid")
	case f.Type == "":
		return f, errors.New("C200").WithDetail("missing type")
	}
	return f, nil
}

func ackFrame(f ClientFrame, handled int) ServerFrame {
	return ServerFrame{Kind: KindAck, HID: f.HID, Type: f.Type, Handled: handled}
}

func errorFrame(err *errors.CompostError) ServerFrame {
	return ServerFrame{Kind: KindError, Code: err.Code, Error: err.Error()}
}

func fireFrame(kind string, detail any) ServerFrame {
	return ServerFrame{Kind: KindFire, Type: kind, Detail: detail}
}
