// Package netclient connects the arena to the authoritative combat server
// over a websocket. It implements effect.Network for outbound requests and
// arena.Inbox for inbound confirmations.
package netclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arenafx/internal/game/arena"
	"github.com/udisondev/arenafx/internal/game/effect"
)

const (
	defaultSendQueueSize = 256
	defaultInboxSize     = 1024
	defaultWriteTimeout  = 5 * time.Second
	defaultPongWait      = 60 * time.Second
	maxMessageSize       = 64 << 10
)

var (
	ErrQueueFull = errors.New("send queue full")
	ErrClosed    = errors.New("client closed")
)

// Options tunes a Client. Zero values take defaults.
type Options struct {
	SendQueue    int
	InboxSize    int
	WriteTimeout time.Duration
	PongWait     time.Duration
}

func (o Options) withDefaults() Options {
	if o.SendQueue <= 0 {
		o.SendQueue = defaultSendQueueSize
	}
	if o.InboxSize <= 0 {
		o.InboxSize = defaultInboxSize
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = defaultWriteTimeout
	}
	if o.PongWait <= 0 {
		o.PongWait = defaultPongWait
	}
	return o
}

// Client is one websocket session with the combat server.
//
// Outbound sends never block the frame loop: they are queued and written by
// a dedicated writer goroutine; when the queue is full the message is
// dropped and logged.
type Client struct {
	conn *websocket.Conn
	opts Options

	sendCh    chan []byte
	inbox     chan arena.Event
	closeCh   chan struct{}
	closeOnce sync.Once

	dropped atomic.Int64
	skipped atomic.Int64
}

var (
	_ effect.Network = (*Client)(nil)
	_ arena.Inbox    = (*Client)(nil)
)

// Dial connects to the combat server at url.
func Dial(ctx context.Context, url string, dialTimeout time.Duration, opts Options) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing combat server %s: %w", url, err)
	}

	slog.Info("combat server connected", "url", url)
	return NewClient(conn, opts), nil
}

// NewClient wraps an established connection. Call Run to start I/O.
func NewClient(conn *websocket.Conn, opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		conn:    conn,
		opts:    opts,
		sendCh:  make(chan []byte, opts.SendQueue),
		inbox:   make(chan arena.Event, opts.InboxSize),
		closeCh: make(chan struct{}),
	}
}

// Dropped returns how many outbound messages were dropped on a full queue.
func (c *Client) Dropped() int64 { return c.dropped.Load() }

// Run pumps messages until ctx is canceled, Close is called or the
// connection fails.
func (c *Client) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(c.readPump)
	g.Go(c.writePump)
	g.Go(func() error {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.closeCh:
		}
		return nil
	})

	err := g.Wait()
	slog.Info("combat server session ended", "dropped", c.dropped.Load(), "skipped", c.skipped.Load())
	return err
}

// Close ends the session. Safe to call multiple times.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.closeCh) })
}

func (c *Client) closed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

// Drain returns every event received since the previous call.
func (c *Client) Drain() []arena.Event {
	n := len(c.inbox)
	if n == 0 {
		return nil
	}
	out := make([]arena.Event, 0, n)
	for range n {
		out = append(out, <-c.inbox)
	}
	return out
}

func (c *Client) readPump() error {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait)); err != nil {
		return fmt.Errorf("setting read deadline: %w", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.closed() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading from combat server: %w", err)
		}

		ev, err := decodeEvent(data)
		if err != nil {
			c.skipped.Add(1)
			slog.Warn("discarding malformed message", "error", err)
			continue
		}

		select {
		case c.inbox <- ev:
		default:
			c.skipped.Add(1)
			slog.Warn("inbox full, dropping event", "event", fmt.Sprintf("%T", ev))
		}
	}
}

// writePump is the only goroutine writing to conn.
func (c *Client) writePump() error {
	ping := time.NewTicker(c.opts.PongWait * 9 / 10)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.sendCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout)); err != nil {
				return fmt.Errorf("setting write deadline: %w", err)
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("writing to combat server: %w", err)
			}

		case <-ping.C:
			deadline := time.Now().Add(c.opts.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return fmt.Errorf("ping: %w", err)
			}

		case <-c.closeCh:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.opts.WriteTimeout))
			return nil
		}
	}
}

// send queues an encoded message without blocking.
func (c *Client) send(typ string, payload any) error {
	if c.closed() {
		return ErrClosed
	}
	data, err := encode(typ, payload)
	if err != nil {
		slog.Error("encoding outbound message", "type", typ, "error", err)
		return err
	}

	select {
	case c.sendCh <- data:
		return nil
	default:
		c.dropped.Add(1)
		slog.Warn("send queue full, dropping message", "type", typ, "queued", len(c.sendCh))
		return ErrQueueFull
	}
}

func (c *Client) RequestDamage(targetID effect.EntityID, amount int32, originX, originY float64) {
	_ = c.send(TypeDamage, DamageRequest{Target: targetID, Amount: amount, OriginX: originX, OriginY: originY})
}

func (c *Client) RequestPvpDamage(targetID effect.EntityID, amount int32, skillTag string) {
	_ = c.send(TypePvpDamage, PvpDamageRequest{Target: targetID, Amount: amount, Skill: skillTag})
}

func (c *Client) RequestHeal(targetID effect.EntityID, amount int32) {
	_ = c.send(TypeHeal, HealRequest{Target: targetID, Amount: amount})
}

func (c *Client) RequestBuff(targetID effect.EntityID, grant effect.BuffGrant) {
	_ = c.send(TypeBuff, BuffRequest{Target: targetID, Grant: grant})
}

func (c *Client) NotifyCast(notice effect.CastNotice) {
	_ = c.send(TypeCast, notice)
}
