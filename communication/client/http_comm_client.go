package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"qenolaba/communication"
	"qenolaba/communication/server"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const requestTimeout = 5 * time.Second

// ClientCommunicator pushes positions to a spectator server and follows the
// positions it streams.
type ClientCommunicator struct {
	serverURL string
	http      *http.Client

	handler communication.Handler
	once    sync.Once
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var _ communication.Communicator = (*ClientCommunicator)(nil)

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	ctx, cancel := context.WithCancel(context.Background())
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: requestTimeout},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// GetState returns the position currently shown by the server.
func (cc *ClientCommunicator) GetState(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.serverURL+"/state", nil)
	if err != nil {
		return "", err
	}
	resp, err := cc.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get state: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get state: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read state: %w", err)
	}
	return string(body), nil
}

// PostPosition hands a position to the server's position handler.
func (cc *ClientCommunicator) PostPosition(ctx context.Context, diagram string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.serverURL+"/position", strings.NewReader(diagram))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp, err := cc.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post position: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server rejected position: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

// Subscribe calls fn with every position the server streams until ctx is
// done or the connection fails.
func (cc *ClientCommunicator) Subscribe(ctx context.Context, fn func(diagram string)) error {
	url := "ws" + strings.TrimPrefix(cc.serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("failed to read from %s: %w", url, err)
		}
		var msg server.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("ignoring malformed message")
			continue
		}
		if msg.Type == "position" {
			fn(msg.Diagram)
		}
	}
}

func (cc *ClientCommunicator) Broadcast(diagram string) {
	ctx, cancel := context.WithTimeout(cc.ctx, requestTimeout)
	defer cancel()
	if err := cc.PostPosition(ctx, diagram); err != nil {
		log.Warn().Err(err).Msg("failed to broadcast position")
	}
}

// OnPosition installs handler and starts following the server's stream.
func (cc *ClientCommunicator) OnPosition(handler func(diagram string)) {
	cc.handler.Set(handler)
	cc.once.Do(func() {
		cc.wg.Add(1)
		go func() {
			defer cc.wg.Done()
			if err := cc.Subscribe(cc.ctx, cc.handler.Call); err != nil && cc.ctx.Err() == nil {
				log.Warn().Err(err).Msg("position stream stopped")
			}
		}()
	})
}

func (cc *ClientCommunicator) Close() error {
	cc.cancel()
	cc.wg.Wait()
	return nil
}
