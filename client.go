// Package routeros is a client for the RouterOS API: length-prefixed
// words grouped into null-terminated sentences over one persistent TCP
// connection, with one command in flight at a time.
package routeros

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/edgewire/routeros/proto"
	"github.com/rs/zerolog"
)

// Client runs commands against one router over a single connection.
// Commands are serialized through a FIFO queue; the wire protocol's
// request tags go unused, so at most one command is in flight and a
// slow command delays the ones behind it.
type Client struct {
	cfg  Config
	conn net.Conn
	log  zerolog.Logger
	done chan struct{}

	mu       sync.Mutex
	queue    []*entry
	current  *entry
	acc      []byte
	timer    *time.Timer
	closed   bool
	closeErr error
}

// Dial opens the connection eagerly and returns a ready client. There
// is no automatic reconnect: once the connection drops, every pending
// command fails with ErrClosed and the client is done.
func Dial(cfg Config) (*Client, error) {
	return DialContext(context.Background(), cfg)
}

// DialContext is Dial bounded by ctx in addition to ConnectTimeout.
func DialContext(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("routeros: dial %s: %w", cfg.Address, err)
	}
	return newClient(conn, cfg), nil
}

// newClient wraps an established connection. Split from Dial so tests
// can drive a client over net.Pipe.
func newClient(conn net.Conn, cfg Config) *Client {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	c := &Client{
		cfg:  cfg,
		conn: conn,
		log:  log.With().Str("router", cfg.Address).Logger(),
		done: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Close tears the connection down and fails every pending command with
// ErrClosed. It is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		<-c.done
		return nil
	}
	c.failAllLocked(ErrClosed)
	c.mu.Unlock()
	err := c.conn.Close()
	<-c.done
	return err
}

// Run submits raw command words and blocks until the reply terminator,
// the command timeout, or connection failure. ctx only bounds the wait:
// an abandoned command still occupies the connection until its timeout,
// since the wire offers no way to cancel it.
func (c *Client) Run(ctx context.Context, words ...string) ([]proto.Sentence, error) {
	if len(words) == 0 {
		return nil, ErrEmptyPath
	}
	e, err := c.submit(words)
	if err != nil {
		return nil, err
	}
	select {
	case out := <-e.result:
		return out.sentences, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Send runs a structured request and parses the reply. A router trap is
// a completed exchange, so it comes back as Result{Success: false} with
// a nil error; only timeout, closure, and submit rejection are errors.
func (c *Client) Send(ctx context.Context, req Request) (proto.Result, error) {
	words, err := req.words()
	if err != nil {
		return proto.Result{}, err
	}
	sentences, err := c.Run(ctx, words...)
	if err != nil {
		return proto.Result{}, err
	}
	return proto.ParseReply(sentences), nil
}

// Login transmits the plain login words (post-6.43 routers accept the
// credentials directly; challenge handshakes are not supported) and
// maps a trap to ErrLoginFailed.
func (c *Client) Login(ctx context.Context, name, password string) error {
	res, err := c.Send(ctx, Request{
		Path: "/login",
		Body: map[string]string{"name": name, "password": password},
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrLoginFailed, res.Message)
	}
	return nil
}

// Pending snapshots the queued and in-flight commands, in-flight first.
func (c *Client) Pending() []PendingCommand {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PendingCommand, 0, c.pendingLocked())
	if c.current != nil {
		out = append(out, PendingCommand{
			ID:       c.current.id,
			Path:     c.current.path,
			QueuedAt: c.current.queuedAt,
			InFlight: true,
		})
	}
	for _, e := range c.queue {
		out = append(out, PendingCommand{ID: e.id, Path: e.path, QueuedAt: e.queuedAt})
	}
	return out
}

func closeError(cause error) error {
	if errors.Is(cause, io.EOF) {
		return ErrClosed
	}
	return fmt.Errorf("%w: %v", ErrClosed, cause)
}
