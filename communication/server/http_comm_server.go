package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"qenolaba/communication"
	"qenolaba/game"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	maxDiagram     = 4096
	clientBuffer   = 16
	pingInterval   = 30 * time.Second
	shutdownPeriod = 5 * time.Second
)

// Message is sent to WebSocket clients for every broadcast position and
// as keep-alive ("ping").
type Message struct {
	Type    string `json:"type"`
	Diagram string `json:"diagram,omitempty"`
}

type client struct {
	send chan []byte
}

// ServerCommunicator serves the current position to spectators and accepts
// positions from mirrors.
type ServerCommunicator struct {
	mutex   sync.RWMutex
	diagram string
	clients map[*client]struct{}
	handler communication.Handler
	router  chi.Router
	server  *http.Server
}

var _ communication.Communicator = (*ServerCommunicator)(nil)

// NewServerCommunicator initializes and returns a new ServerCommunicator.
func NewServerCommunicator() *ServerCommunicator {
	sc := &ServerCommunicator{
		clients: make(map[*client]struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/state", sc.handleGetState)
	r.Post("/position", sc.handlePostPosition)
	r.Get("/ws", sc.handleWS)
	sc.router = r
	return sc
}

func (sc *ServerCommunicator) Handler() http.Handler {
	return sc.router
}

// Start serves on addr in the background.
func (sc *ServerCommunicator) Start(addr string) {
	sc.server = &http.Server{Addr: addr, Handler: sc.router}
	go func() {
		log.Info().Msgf("spectator server listening on %s", addr)
		if err := sc.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("spectator server failed")
		}
	}()
}

func (sc *ServerCommunicator) Close() error {
	sc.mutex.Lock()
	for c := range sc.clients {
		delete(sc.clients, c)
		close(c.send)
	}
	sc.mutex.Unlock()

	if sc.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	return sc.server.Shutdown(ctx)
}

func (sc *ServerCommunicator) OnPosition(handler func(diagram string)) {
	sc.handler.Set(handler)
}

// Broadcast stores diagram as current position and pushes it to every
// WebSocket client. Clients that cannot keep up miss positions.
func (sc *ServerCommunicator) Broadcast(diagram string) {
	data, err := json.Marshal(Message{Type: "position", Diagram: diagram})
	if err != nil {
		return
	}
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.diagram = diagram
	for c := range sc.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (sc *ServerCommunicator) handleGetState(w http.ResponseWriter, r *http.Request) {
	sc.mutex.RLock()
	diagram := sc.diagram
	sc.mutex.RUnlock()
	if diagram == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, diagram)
}

func (sc *ServerCommunicator) handlePostPosition(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDiagram))
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := game.NewBoard().SetState(string(body)); err != nil {
		http.Error(w, "bad position: "+err.Error(), http.StatusBadRequest)
		return
	}
	sc.handler.Call(string(body))
	w.WriteHeader(http.StatusAccepted)
}

func (sc *ServerCommunicator) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{send: make(chan []byte, clientBuffer)}

	sc.mutex.Lock()
	sc.clients[c] = struct{}{}
	if sc.diagram != "" {
		data, _ := json.Marshal(Message{Type: "position", Diagram: sc.diagram})
		c.send <- data
	}
	sc.mutex.Unlock()

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, c.send); err != nil {
			log.Debug().Err(err).Msg("websocket writer stopped")
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			sc.unregister(c)
			return
		}
	}
}

func (sc *ServerCommunicator) unregister(c *client) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	if _, ok := sc.clients[c]; ok {
		delete(sc.clients, c)
		close(c.send)
	}
}

func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(Message{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < pingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
