package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lenslab/lens/errors"
	"github.com/lenslab/lens/logging"
)

// RemoteClient implements Client by calling the dataset service's HTTP API.
type RemoteClient struct {
	httpClient *http.Client
	baseURL    string
	log        *logrus.Entry
}

// NewRemoteClient creates a new RemoteClient for the given base URL.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RemoteClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logging.NewLogger("client"),
	}
}

// GetDataset resolves a dataset in two phases. A 202 response means the
// service is still preparing the dataset (not ready); a 404 means the
// query resolved and the dataset is absent.
func (c *RemoteClient) GetDataset(ctx context.Context, name string) (*Dataset, bool, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/datasets/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get dataset: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var dataset Dataset
		if err := json.NewDecoder(resp.Body).Decode(&dataset); err != nil {
			return nil, false, fmt.Errorf("failed to decode dataset: %w", err)
		}
		return &dataset, true, nil
	case http.StatusAccepted:
		return nil, false, nil
	case http.StatusNotFound:
		return nil, true, nil
	default:
		return nil, false, fmt.Errorf("dataset service returned status %d", resp.StatusCode)
	}
}

// IsRunning returns true if the service is available and responding.
func (c *RemoteClient) IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Subscribe opens the server-push event channel via Server-Sent Events.
// Returns a channel that receives decoded events. The channel is closed
// when the stream ends or the context is cancelled; malformed payloads
// are logged and skipped rather than tearing down the stream.
func (c *RemoteClient) Subscribe(ctx context.Context, dataset, subscription string) (<-chan Event, error) {
	params := url.Values{}
	params.Set("initializer", dataset)
	params.Set("subscription", subscription)
	params.Set("events", EventStateUpdate)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.SubscribeFailed(dataset, err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// Use a separate client with no timeout for streaming
	streamClient := &http.Client{Timeout: 0}

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, errors.SubscribeFailed(dataset, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.SubscribeFailed(dataset, fmt.Errorf("stream returned status %d", resp.StatusCode))
	}

	ch := make(chan Event, 10)

	go func() {
		defer resp.Body.Close()
		defer close(ch)

		scanner := bufio.NewScanner(resp.Body)
		// Increase buffer size to handle large state payloads (default is 64KB)
		buf := make([]byte, 0, 1024*1024)
		scanner.Buffer(buf, 10*1024*1024)

		eventType := EventStateUpdate
		for scanner.Scan() {
			line := scanner.Text()

			// A blank line ends the event; the type does not carry over.
			if line == "" {
				eventType = EventStateUpdate
				continue
			}

			// Skip comments
			if strings.HasPrefix(line, ":") {
				continue
			}

			if strings.HasPrefix(line, "event: ") {
				eventType = strings.TrimPrefix(line, "event: ")
				continue
			}

			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			// Events delivered after cancellation are discarded.
			if ctx.Err() != nil {
				return
			}

			if eventType != EventStateUpdate {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			description, err := DecodeStateUpdate([]byte(data))
			if err != nil {
				c.log.WithError(err).Warn("skipping malformed event payload")
				continue
			}

			select {
			case ch <- Event{Type: eventType, Description: description}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Connect opens the outbound websocket message channel.
func (c *RemoteClient) Connect(ctx context.Context, dataset, subscription string) (*Socket, error) {
	return DialSocket(ctx, c.baseURL, dataset, subscription)
}

// Close cleans up any resources used by the client.
func (c *RemoteClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Ensure RemoteClient implements Client interface.
var _ Client = (*RemoteClient)(nil)
