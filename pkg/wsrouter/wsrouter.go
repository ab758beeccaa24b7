package wsrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type errorMessage struct {
	Type    string       `json:"type"`
	Payload errorPayload `json:"payload"`
}

type HandlerFunc func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error

type Middleware func(next HandlerFunc) HandlerFunc

type WSRouter struct {
	routes      map[string]HandlerFunc
	middlewares []Middleware
	connMu      sync.Map
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc)}
}

// Use appends a middleware applied to every handler registered afterwards.
func (r *WSRouter) Use(mw Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

func (r *WSRouter) handle(messageType string, handler HandlerFunc) {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	r.routes[messageType] = handler
}

// Handle registers a typed handler. The incoming payload is unmarshalled into
// T before the handler is invoked.
func Handle[T any](r *WSRouter, messageType string, handler func(ctx context.Context, conn *websocket.Conn, input T) error) {
	r.handle(messageType, func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
		var input T
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &input); err != nil {
				return fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		return handler(ctx, conn, input)
	})
}

// WriteJSON writes a message to the connection under its write lock. The
// transport allows only one concurrent writer per connection, so every write
// to a routed connection must go through here.
func (r *WSRouter) WriteJSON(conn *websocket.Conn, v any) error {
	m, _ := r.connMu.LoadOrStore(conn, &sync.Mutex{})
	mu := m.(*sync.Mutex)

	mu.Lock()
	defer mu.Unlock()

	return conn.WriteJSON(v)
}

// ServeConn reads messages from the connection until it fails, routing each
// one to its registered handler. Handler errors are reported back to the
// client and do not terminate the loop.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	defer func() {
		conn.Close()
		r.connMu.Delete(conn)
	}()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			r.WriteJSON(conn, errorMessage{Type: "error", Payload: errorPayload{Message: "unknown message type"}})
			continue
		}

		msgCtx := context.WithValue(ctx, messageTypeKey, msg.Type)
		if err := handler(msgCtx, conn, msg.Payload); err != nil {
			r.WriteJSON(conn, errorMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		}
	}
}
