package router

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/ripple-lab/backend/pkg/ws"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

// WebsocketHandlerFunc serves one websocket connection until it returns. The
// ws.Client of the connection is available through xcontext.WSClient.
type WebsocketHandlerFunc[Request any] func(ctx context.Context, req *Request) error

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func Websocket[Request any](r *Router, pattern string, handler WebsocketHandlerFunc[Request]) {
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		var request Request
		if err := bindRequest(req, http.MethodGet, &request); err != nil {
			http.Error(w, "Cannot bind the request", http.StatusBadRequest)
			return
		}

		for _, m := range r.befores {
			newCtx, err := m(ctx)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			ctx = newCtx
		}

		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upgrade the connection: %v", err)
			return
		}

		client := ws.NewClient(conn)
		defer client.Close()

		ctx = xcontext.WithWSClient(ctx, client)
		err = handler(ctx, &request)

		for _, closer := range r.closers {
			closer(ctx, err)
		}
	})
}
