package jsonrpc

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gabapcia/validatorwatch/internal/pkg/x/chflow"

	"github.com/gorilla/websocket"
	"github.com/puzpuzpuz/xsync/v4"
)

// wsClient multiplexes concurrent requests over one WebSocket connection.
// Responses are routed back to callers by request id.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	pending *xsync.Map[string, chan response]

	closeOnce sync.Once
	done      chan struct{}
}

var _ Conn = (*wsClient)(nil)

// DialWebSocket connects to endpoint and starts the read loop.
func DialWebSocket(ctx context.Context, endpoint string) (*wsClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	c := &wsClient{
		conn:    conn,
		pending: xsync.NewMap[string, chan response](),
		done:    make(chan struct{}),
	}

	go c.readLoop()
	return c, nil
}

// readLoop delivers every response to its waiting caller. When reading fails
// the connection is finished and every pending caller is released.
func (c *wsClient) readLoop() {
	defer c.shutdown()

	for {
		var res response
		if err := c.conn.ReadJSON(&res); err != nil {
			return
		}

		if res.ID == "" {
			continue
		}

		if ch, ok := c.pending.LoadAndDelete(res.ID); ok {
			ch <- res
		}
	}
}

func (c *wsClient) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})

	c.pending.Range(func(id string, ch chan response) bool {
		if _, ok := c.pending.LoadAndDelete(id); ok {
			close(ch)
		}
		return true
	})
}

func (c *wsClient) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	select {
	case <-c.done:
		return nil, ErrConnectionClosed
	default:
	}

	req := newRequest(method, params)

	ch := make(chan response, 1)
	c.pending.Store(req.ID, ch)

	c.writeMu.Lock()
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		c.pending.Delete(req.ID)
		return nil, err
	}

	res, ok := chflow.Receive(ctx, ch)
	if !ok {
		c.pending.Delete(req.ID)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrConnectionClosed
	}

	return res.Result, res.Err()
}

// Close terminates the connection; waiting requests fail with ErrConnectionClosed.
func (c *wsClient) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	c.shutdown()
	return nil
}
