// Package client provides the network client for the dataset service.
// It implements the two channels the UI consumes: a server-push event
// stream delivering state updates, and an outbound websocket carrying
// typed messages such as filter updates.
package client

import (
	"context"

	"github.com/lenslab/lens/session"
)

// EventStateUpdate is the only event type this layer subscribes to.
const EventStateUpdate = "state_update"

// Event is one decoded message from the server-push channel.
type Event struct {
	Type        string
	Description session.Description
}

// Sample is one dataset sample as served by the dataset API.
type Sample struct {
	ID       string            `json:"id"`
	Filepath string            `json:"filepath"`
	Tags     []string          `json:"tags,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
}

// Dataset is the dataset metadata and sample listing the grid renders.
type Dataset struct {
	Name        string   `json:"name"`
	MediaType   string   `json:"media_type"`
	SampleCount int      `json:"sample_count"`
	Samples     []Sample `json:"samples,omitempty"`
}

// Client is the interface the UI consumes. RemoteClient implements it
// against the HTTP/SSE/websocket API of the dataset service.
type Client interface {
	// GetDataset resolves a dataset in two phases: ready reports whether
	// the query has resolved. A resolved query with a nil dataset means
	// the dataset does not exist.
	GetDataset(ctx context.Context, name string) (*Dataset, bool, error)

	// Subscribe opens the server-push event channel for a dataset and
	// subscription id. The returned channel is closed when the stream
	// ends or the context is cancelled; events arriving after
	// cancellation are discarded.
	Subscribe(ctx context.Context, dataset, subscription string) (<-chan Event, error)

	// Connect opens the outbound message channel for a dataset session.
	Connect(ctx context.Context, dataset, subscription string) (*Socket, error)

	// IsRunning returns true if the service is available and responding.
	IsRunning() bool

	// Close cleans up any resources used by the client.
	Close() error
}
