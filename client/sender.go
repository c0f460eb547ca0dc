package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lenslab/lens/errors"
	"github.com/lenslab/lens/logging"
	"github.com/lenslab/lens/session"
)

// Socket is the outbound message channel for one dataset session. Writes
// are serialized; gorilla/websocket allows at most one concurrent writer.
type Socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
	log  *logrus.Entry
}

// DialSocket opens a websocket to the service's /ws endpoint.
func DialSocket(ctx context.Context, baseURL, dataset, subscription string) (*Socket, error) {
	wsURL, err := toWebsocketURL(baseURL)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("dataset", dataset)
	params.Set("subscription", subscription)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL+"/ws?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotConnected, "failed to open message channel").
			WithDetail("dataset", dataset)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	return &Socket{
		conn: conn,
		log:  logging.NewLogger("socket"),
	}, nil
}

// Send writes one typed message. The payload fields are flattened next to
// the type tag, matching the service's message envelope.
func (s *Socket) Send(messageType string, payload map[string]interface{}) error {
	message := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		message[k] = v
	}
	message["type"] = messageType

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return errors.New(errors.ErrCodeNotConnected, "message channel is closed")
	}

	if err := s.conn.WriteJSON(message); err != nil {
		return errors.SendFailed(messageType, err)
	}

	s.log.WithField("type", messageType).Debug("message sent")
	return nil
}

// Close shuts down the websocket connection.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	err := s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil && err != websocket.ErrCloseSent {
		s.conn.Close()
		s.conn = nil
		return err
	}

	err = s.conn.Close()
	s.conn = nil
	return err
}

func toWebsocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Ensure Socket satisfies the session's outbound channel contract.
var _ session.Sender = (*Socket)(nil)
