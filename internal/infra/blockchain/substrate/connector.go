package substrate

import (
	"context"
	"net/http"
	"sync"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
	"github.com/gabapcia/validatorwatch/internal/pkg/transport/jsonrpc"

	"github.com/puzpuzpuz/xsync/v4"
)

// DefaultSS58Prefix is the generic Substrate address format.
const DefaultSS58Prefix = 42

type dialFunc func(ctx context.Context, endpoint string, httpClient *http.Client) (jsonrpc.Conn, error)

// Connector owns the process-wide node connection. It dials on first use,
// checks the connection's health each time it is handed out and replaces it
// when the check fails.
type Connector struct {
	endpoint   string
	httpClient *http.Client
	ss58Prefix uint16
	dial       dialFunc

	mu   sync.Mutex
	conn jsonrpc.Conn

	runtimes *xsync.Map[uint32, *runtime]
}

var _ activityscan.ChainConnector = (*Connector)(nil)

func (c *Connector) Connect(ctx context.Context) (activityscan.Chain, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := healthCheck(ctx, c.conn)
		if err == nil {
			return newClient(c.conn, c.ss58Prefix, c.runtimes), nil
		}

		logger.Warn(ctx, "node connection unhealthy, reconnecting", "endpoint", c.endpoint, "error", err)
		_ = c.conn.Close()
		c.conn = nil
	}

	conn, err := c.dial(ctx, c.endpoint, c.httpClient)
	if err != nil {
		return nil, err
	}

	if err := healthCheck(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info(ctx, "connected to node", "endpoint", c.endpoint)

	c.conn = conn
	return newClient(conn, c.ss58Prefix, c.runtimes), nil
}

// Close releases the current connection, if any.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}

type healthResponse struct {
	Peers           int  `json:"peers"`
	IsSyncing       bool `json:"isSyncing"`
	ShouldHavePeers bool `json:"shouldHavePeers"`
}

func healthCheck(ctx context.Context, conn jsonrpc.Client) error {
	var health healthResponse
	return newClient(conn, 0, nil).call(ctx, &health, "system_health")
}

type config struct {
	httpClient *http.Client
	ss58Prefix uint16
	dial       dialFunc
}

type Option func(*config)

// NewConnector creates a Connector for endpoint (ws://, wss://, http:// or https://).
func NewConnector(endpoint string, opts ...Option) *Connector {
	cfg := config{
		httpClient: http.DefaultClient,
		ss58Prefix: DefaultSS58Prefix,
		dial:       jsonrpc.Dial,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Connector{
		endpoint:   endpoint,
		httpClient: cfg.httpClient,
		ss58Prefix: cfg.ss58Prefix,
		dial:       cfg.dial,
		runtimes:   xsync.NewMap[uint32, *runtime](),
	}
}

// WithHTTPClient sets the client used for http(s) endpoints.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithSS58Prefix sets the network prefix addresses are encoded with.
func WithSS58Prefix(prefix uint16) Option {
	return func(c *config) {
		c.ss58Prefix = prefix
	}
}

func withDial(dial dialFunc) Option {
	return func(c *config) {
		c.dial = dial
	}
}
