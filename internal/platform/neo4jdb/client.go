package neo4jdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/researchgraph-backend/internal/platform/envutil"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
)

// Client owns the single pooled Neo4j driver for the process. The driver is
// created lazily on first use and shared by every request; Close is safe to
// call at any point, including before the first connect.
type Client struct {
	mu       sync.Mutex
	driver   neo4j.DriverWithContext
	uri      string
	user     string
	password string
	timeout  time.Duration
	maxPool  int
	Database string
	log      *logger.Logger
}

func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	timeoutSec := envutil.Int("NEO4J_TIMEOUT_SECONDS", 10)
	return &Client{
		uri:      envutil.Str("NEO4J_URI", "bolt://localhost:7687"),
		user:     envutil.Str("NEO4J_USER", "neo4j"),
		password: envutil.Str("NEO4J_PASSWORD", "password"),
		timeout:  time.Duration(timeoutSec) * time.Second,
		maxPool:  envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
		Database: envutil.Str("NEO4J_DATABASE", ""),
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

// Connect returns the shared driver, creating it on first call. Repeated
// calls reuse the established driver.
func (c *Client) Connect() (neo4j.DriverWithContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver != nil {
		return c.driver, nil
	}
	auth := neo4j.BasicAuth(c.user, c.password, "")
	driver, err := neo4j.NewDriverWithContext(c.uri, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = c.maxPool
		cfg.SocketConnectTimeout = c.timeout
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}
	c.driver = driver
	return c.driver, nil
}

// Session opens a session against the configured database. The caller owns
// the session and must close it.
func (c *Client) Session(ctx context.Context, mode neo4j.AccessMode) (neo4j.SessionWithContext, error) {
	driver, err := c.Connect()
	if err != nil {
		return nil, err
	}
	return driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.Database,
	}), nil
}

// Verify issues a trivial round trip and reports liveness. It never returns
// an error; any failure, including an unreachable store, yields false.
func (c *Client) Verify(ctx context.Context) bool {
	driver, err := c.Connect()
	if err != nil {
		c.log.Warn("neo4j connect failed", "error", err)
		return false
	}
	vctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		c.log.Warn("neo4j connectivity check failed", "error", err)
		return false
	}
	return true
}

// Close releases the driver. Idempotent; a never-connected or already-closed
// client is a no-op.
func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}
