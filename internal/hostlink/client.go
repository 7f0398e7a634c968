// Package hostlink forwards gesture commands to a remote DeskPad host.
package hostlink

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/gorilla/websocket"
)

// TokenHeader carries the shared host token.
const TokenHeader = "X-DeskPad-Token"

const (
	defaultQueue   = 256
	redialDelay    = time.Second
	writeTimeout   = 2 * time.Second
	handshakeLimit = 5 * time.Second
)

// Client is a fire-and-forget command sink backed by a websocket to a remote host.
// Its queue is bounded for motion only: clicks and keys are never discarded.
type Client struct {
	url     string
	header  http.Header
	dialer  *websocket.Dialer
	limit   int
	dropped atomic.Int64

	mu      sync.Mutex
	pending []gesture.Command
	ready   chan struct{}
}

// Ensure Client is a command sink.
var _ gesture.Sink = (*Client)(nil)

// NewClient returns a client for url; queue bounds the number of unsent commands.
func NewClient(url, token string, queue int) (*Client, error) {
	if url == "" {
		return nil, errors.New("host url is required")
	}
	if queue <= 0 {
		queue = defaultQueue
	}
	header := http.Header{}
	if token != "" {
		header.Set(TokenHeader, token)
	}
	return &Client{
		url:    url,
		header: header,
		dialer: &websocket.Dialer{HandshakeTimeout: handshakeLimit},
		limit:  queue,
		ready:  make(chan struct{}, 1),
	}, nil
}

// Send queues cmd without blocking. When the queue is full, motion is merged
// into the newest queued command of the same kind, or dropped; a click or key
// evicts the oldest queued motion instead.
func (c *Client) Send(cmd gesture.Command) {
	c.mu.Lock()
	switch {
	case len(c.pending) < c.limit:
		c.pending = append(c.pending, cmd)
	case discrete(cmd):
		if i := c.oldestMotion(); i >= 0 {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			c.countDrop()
		}
		c.pending = append(c.pending, cmd)
	case !c.mergeTail(cmd):
		c.countDrop()
	}
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// discrete reports whether cmd must reach the host.
func discrete(cmd gesture.Command) bool {
	return cmd.Type == gesture.CmdClick || cmd.Type == gesture.CmdKey
}

// oldestMotion returns the index of the first queued motion command, or -1. Caller holds c.mu.
func (c *Client) oldestMotion() int {
	for i, cmd := range c.pending {
		if !discrete(cmd) {
			return i
		}
	}
	return -1
}

// mergeTail folds cmd into the newest queued command when both are the same motion. Caller holds c.mu.
func (c *Client) mergeTail(cmd gesture.Command) bool {
	if len(c.pending) == 0 {
		return false
	}
	last := &c.pending[len(c.pending)-1]
	if last.Type != cmd.Type {
		return false
	}
	switch cmd.Type {
	case gesture.CmdMove, gesture.CmdScroll:
		last.DX += cmd.DX
		last.DY += cmd.DY
	case gesture.CmdZoom:
		last.Delta += cmd.Delta
	default:
		return false
	}
	return true
}

// countDrop records a discarded motion command. Caller holds c.mu.
func (c *Client) countDrop() {
	if n := c.dropped.Add(1); n == 1 || n%100 == 0 {
		log.Printf("hostlink: queue full, dropped %d commands", n)
	}
}

// take removes and returns every queued command.
func (c *Client) take() []gesture.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

// requeue puts unsent commands back at the head of the queue.
func (c *Client) requeue(cmds []gesture.Command) {
	if len(cmds) == 0 {
		return
	}
	c.mu.Lock()
	c.pending = append(append([]gesture.Command(nil), cmds...), c.pending...)
	c.mu.Unlock()
}

// Dropped returns how many commands were discarded.
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Run keeps a connection open and writes queued commands until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("hostlink: %v; redialing in %s", err, redialDelay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(redialDelay):
		}
	}
}

// session dials once and pumps commands until the connection fails.
func (c *Client) session(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	defer conn.Close()
	log.Printf("hostlink: connected to %s", c.url)
	select {
	case c.ready <- struct{}{}:
	default:
	}

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
			return ctx.Err()
		case err := <-readErr:
			return fmt.Errorf("read: %w", err)
		case <-c.ready:
			cmds := c.take()
			for i, cmd := range cmds {
				if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
					c.requeue(cmds[i:])
					return err
				}
				if err := conn.WriteJSON(cmd); err != nil {
					c.requeue(cmds[i:])
					return fmt.Errorf("write: %w", err)
				}
			}
		}
	}
}
