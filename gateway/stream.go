package gateway

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/habitgrid/habitkit/pkg/logger"
)

// NotificationStream is a live feed of notifications pushed by the server
// over a websocket. Read from Notifications until it closes, then consult
// Err for the reason. Close tears the connection down; a canceled dial
// context does the same.
type NotificationStream struct {
	conn          *websocket.Conn
	notifications chan Notification

	mu     sync.Mutex
	err    error
	closed bool
}

// OpenNotificationStream dials the notification websocket with the current
// bearer token. A 401 during the handshake fires the unauthorized handler,
// same as any REST call.
func (c *Client) OpenNotificationStream(ctx context.Context) (*NotificationStream, error) {
	streamURL := *c.baseURL
	switch streamURL.Scheme {
	case "https":
		streamURL.Scheme = "wss"
	default:
		streamURL.Scheme = "ws"
	}
	streamURL.Path = c.cfg.StreamPath

	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	if token := c.currentToken(ctx); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, streamURL.String(), header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			c.fireUnauthorized(ctx)
			return nil, &APIError{Status: http.StatusUnauthorized}
		}
		return nil, errors.Join(ErrRequestFailed, err)
	}

	stream := &NotificationStream{
		conn:          conn,
		notifications: make(chan Notification),
	}

	go stream.readLoop(ctx, c)
	go func() {
		<-ctx.Done()
		stream.close(ctx.Err())
	}()

	return stream, nil
}

// Notifications returns the feed channel. It is closed when the stream ends.
func (s *NotificationStream) Notifications() <-chan Notification {
	return s.notifications
}

// Err returns the reason the stream ended, or nil after a clean Close or a
// normal server-side closure.
func (s *NotificationStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears down the connection. Safe to call more than once.
func (s *NotificationStream) Close() error {
	s.close(nil)
	return nil
}

func (s *NotificationStream) close(reason error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.err == nil {
		s.err = reason
	}
	s.mu.Unlock()

	_ = s.conn.Close()
}

func (s *NotificationStream) readLoop(ctx context.Context, c *Client) {
	defer close(s.notifications)

	for {
		var notification Notification
		if err := s.conn.ReadJSON(&notification); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.close(nil)
			} else {
				s.mu.Lock()
				alreadyClosed := s.closed
				s.mu.Unlock()
				if !alreadyClosed {
					c.log.DebugContext(ctx, "notification stream ended", logger.Error(err))
					s.close(errors.Join(ErrStreamClosed, err))
				}
			}
			return
		}

		select {
		case s.notifications <- notification:
		case <-ctx.Done():
			s.close(ctx.Err())
			return
		}
	}
}
