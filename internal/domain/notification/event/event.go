package event

import "encoding/json"

type Event interface {
	Op() string
}

type EventRequest struct {
	Op   string `json:"o"`
	Data any    `json:"d"`
}

// ClientEvent is the inbound side of EventRequest. The data is kept raw until
// the dispatcher knows which payload the op expects.
type ClientEvent struct {
	Op   string          `json:"o"`
	Data json.RawMessage `json:"d"`
}

type EventResponse struct {
	Op   string `json:"o"`
	Seq  int64  `json:"s"`
	Data any    `json:"d"`
}

func New(ev Event) *EventRequest {
	return &EventRequest{
		Op:   ev.Op(),
		Data: ev,
	}
}

func Format(event *EventRequest, seq int64) *EventResponse {
	return &EventResponse{
		Op:   event.Op,
		Seq:  seq,
		Data: event.Data,
	}
}
