// Package electrum implements a minimal JSON-RPC client for Electrum Cash
// protocol servers (Fulcrum, Rostrum) reachable over websocket.
package electrum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrClientClosed is returned for calls made on, or pending when closing,
	// a closed client.
	ErrClientClosed = errors.New("electrum client is closed")
)

// RPCError is an error returned by the server for a call.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("electrum rpc error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	ID     *uint64         `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Client multiplexes calls over a single websocket connection. Server
// notifications for subscriptions are ignored: callers only use the initial
// state returned by the subscribe call.
type Client struct {
	conn         *websocket.Conn
	writeLock    *sync.Mutex
	writeTimeout time.Duration
	requestID    atomic.Uint64

	lock    *sync.Mutex
	pending map[uint64]chan response
	closed  bool
	done    chan struct{}
}

// Dial opens a websocket connection with the given server url
// (ie. wss://electrum.imaginary.cash:50004).
func Dial(ctx context.Context, url string, timeout time.Duration) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	c := &Client{
		conn:         conn,
		writeLock:    &sync.Mutex{},
		writeTimeout: timeout,
		lock:         &sync.Mutex{},
		pending:      make(map[uint64]chan response),
		done:         make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Call sends a request and decodes the result into the given pointer, if not
// nil. It blocks until the response arrives, the context is done or the
// client is closed.
func (c *Client) Call(
	ctx context.Context, method string, result interface{}, params ...interface{},
) error {
	if params == nil {
		params = []interface{}{}
	}
	id := c.requestID.Add(1)
	ch := make(chan response, 1)

	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return ErrClientClosed
	}
	c.pending[id] = ch
	c.lock.Unlock()
	defer c.forget(id)

	req := request{"2.0", id, method, params}
	c.writeLock.Lock()
	//nolint
	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	err := c.conn.WriteJSON(req)
	c.writeLock.Unlock()
	if err != nil {
		return fmt.Errorf("write %s request: %w", method, err)
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return resp.Error
		}
		if result == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClientClosed
	}
}

// Close terminates the connection and fails any pending call.
func (c *Client) Close() error {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.lock.Unlock()

	c.writeLock.Lock()
	//nolint
	c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	c.writeLock.Unlock()
	return c.conn.Close()
}

func (c *Client) forget(id uint64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.pending, id)
}

func (c *Client) readLoop() {
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				log.WithError(err).Warn("electrum connection dropped unexpectedly")
			}
			//nolint
			c.Close()
			return
		}

		resp := response{}
		if err := json.Unmarshal(message, &resp); err != nil {
			log.WithError(err).Debug("skipping malformed electrum message")
			continue
		}
		// Subscription notifications carry a method and no id.
		if resp.ID == nil {
			continue
		}

		c.lock.Lock()
		ch, ok := c.pending[*resp.ID]
		c.lock.Unlock()
		if !ok {
			continue
		}
		select {
		case ch <- resp:
		default:
		}
	}
}
