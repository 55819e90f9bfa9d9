package realtime

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/models"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// Handlers receives pushed events. Nil funcs are skipped.
type Handlers struct {
	OnNewNotification  func(notification *models.Notification)
	OnUnreadCount      func(count int)
	OnNotificationRead func(notificationID string)
	OnStateChange      func(state State)
}

// Channel is the persistent push connection to the backend. It is
// reconnected on every auth change and torn down on logout; while it
// is connected the pushed data is treated as authoritative over polls.
type Channel struct {
	logger           zerolog.Logger
	url              string
	handshakeTimeout time.Duration
	handlers         Handlers

	mu         sync.Mutex
	conn       *websocket.Conn
	generation uint64

	state atomic.Int32
	seq   atomic.Uint64
}

func NewChannel(
	logger zerolog.Logger,
	channelURL string,
	handshakeTimeout time.Duration,
	handlers Handlers,
) *Channel {
	return &Channel{
		logger:           logger,
		url:              channelURL,
		handshakeTimeout: handshakeTimeout,
		handlers:         handlers,
	}
}

// Connect dials the channel with the given bearer token and starts the
// read loop. An already open connection is torn down first.
func (c *Channel) Connect(ctx context.Context, token string) error {
	c.Disconnect()

	dialURL, err := url.Parse(c.url)
	if err != nil {
		return err
	}
	query := dialURL.Query()
	query.Set("token", token)
	dialURL.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: c.handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, dialURL.String(), nil)
	if err != nil {
		c.logger.Error().
			Err(err).
			Msg("failed to dial realtime channel")
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	c.setState(StateConnected)
	c.logger.Info().Msg("realtime channel connected")

	go c.readLoop(conn, generation)
	return nil
}

// Reconnect re-dials with fresh credentials. Used on login.
func (c *Channel) Reconnect(ctx context.Context, token string) error {
	return c.Connect(ctx, token)
}

// Disconnect closes the connection. Safe to call when already closed.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.generation++
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
		c.setState(StateDisconnected)
		c.logger.Info().Msg("realtime channel disconnected")
	}
}

func (c *Channel) State() State {
	return State(c.state.Load())
}

func (c *Channel) Connected() bool {
	return c.State() == StateConnected
}

// Seq returns the count of push events received so far. It only ever
// grows; the notifications service compares it across a poll round
// trip to detect pushes that raced the poll.
func (c *Channel) Seq() uint64 {
	return c.seq.Load()
}

func (c *Channel) setState(state State) {
	c.state.Store(int32(state))
	if c.handlers.OnStateChange != nil {
		c.handlers.OnStateChange(state)
	}
}

func (c *Channel) readLoop(conn *websocket.Conn, generation uint64) {
	for {
		var f frame
		err := conn.ReadJSON(&f)
		if err != nil {
			c.mu.Lock()
			stale := c.generation != generation
			if !stale {
				c.conn = nil
			}
			c.mu.Unlock()

			// A stale loop belongs to a connection that was already
			// replaced; its exit must not flip the state.
			if !stale {
				c.logger.Warn().
					Err(err).
					Msg("realtime channel read failed")
				c.setState(StateDisconnected)
			}
			return
		}
		c.dispatch(&f)
	}
}

func (c *Channel) dispatch(f *frame) {
	c.seq.Add(1)

	switch f.Event {
	case eventNewNotification:
		var payload notificationPayload
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			c.logger.Error().
				Err(err).
				Msg("failed to decode notification event")
			return
		}
		notification, err := payload.toModel()
		if err != nil {
			c.logger.Error().
				Err(err).
				Msg("failed to parse notification event")
			return
		}
		if c.handlers.OnNewNotification != nil {
			c.handlers.OnNewNotification(notification)
		}

	case eventUnreadCountUpdate:
		var payload unreadCountPayload
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			c.logger.Error().
				Err(err).
				Msg("failed to decode unread count event")
			return
		}
		if c.handlers.OnUnreadCount != nil {
			c.handlers.OnUnreadCount(payload.Count)
		}

	case eventNotificationRead:
		var payload notificationReadPayload
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			c.logger.Error().
				Err(err).
				Msg("failed to decode notification read event")
			return
		}
		if c.handlers.OnNotificationRead != nil {
			c.handlers.OnNotificationRead(payload.ID)
		}

	default:
		c.logger.Debug().
			Str("event", f.Event).
			Msg("ignoring unknown realtime event")
	}
}
