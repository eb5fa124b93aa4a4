package engine

import (
	"context"
	"encoding/json"

	"github.com/ripple-lab/backend/internal/domain/notification/event"
	"github.com/ripple-lab/backend/internal/model"
	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

type Server struct {
	registry   *Registry
	dispatcher *Dispatcher
}

func NewServer(registry *Registry, dispatcher *Dispatcher) *Server {
	return &Server{
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// ServeRealtime runs one websocket connection until the client disconnects.
// Outbound events are sequenced per session.
func (s *Server) ServeRealtime(ctx context.Context, req *model.ServeRealtimeRequest) error {
	session := NewSession()
	s.registry.Register(session)
	defer s.registry.Unregister(session.ID())

	wsClient := xcontext.WSClient(ctx)
	var seq int64
	for {
		select {
		case ev, ok := <-session.C:
			if !ok {
				return errorx.New(errorx.Unavailable, "Session is closed")
			}

			b, err := json.Marshal(event.Format(ev, seq))
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot marshal event: %v", err)
				continue
			}
			seq++

			if err := wsClient.Write(b, req.Compress); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot write to client: %v", err)
				return errorx.Unknown
			}

		case raw, ok := <-wsClient.R:
			if !ok {
				return nil
			}

			s.dispatcher.Dispatch(ctx, session, raw)
		}
	}
}
