// Package app composes the dataset view: theme, plugin loading, dataset
// resolution, and the event subscription, driven through a loading →
// error → ready sequence.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/lenslab/lens/client"
	"github.com/lenslab/lens/config"
	"github.com/lenslab/lens/logging"
	"github.com/lenslab/lens/plugin"
	"github.com/lenslab/lens/session"
	"github.com/lenslab/lens/tui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseError
	phaseNotFound
	phaseReady
)

// StreamState tracks the event subscription over one dataset-view session.
type StreamState int

const (
	StreamIdle StreamState = iota
	StreamConnecting
	StreamStreaming
	StreamClosed
)

func (s StreamState) String() string {
	switch s {
	case StreamConnecting:
		return "connecting"
	case StreamStreaming:
		return "live"
	case StreamClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Model is the top-level bubbletea model for the dataset view.
type Model struct {
	cfg      *config.Config
	client   client.Client
	session  *session.Session
	registry *plugin.Registry
	theme    *theme.Theme
	keys     KeyMap
	spinner  spinner.Model
	log      *logrus.Entry

	dataset      string
	subscription string
	info         *client.Dataset

	phase         phase
	stream        StreamState
	err           error
	pluginsLoaded bool

	ctx    context.Context
	cancel context.CancelFunc
	events <-chan client.Event

	cursor int
	width  int
	height int
}

// NewSubscriptionID derives a unique subscription id for one dataset-view
// session.
func NewSubscriptionID(dataset string) string {
	return fmt.Sprintf("%s-%d", dataset, time.Now().UnixNano())
}

// New creates the dataset view model. The context governs the event
// subscription; teardown cancels it.
func New(ctx context.Context, cfg *config.Config, c client.Client, sess *session.Session, registry *plugin.Registry, dataset, subscription string) *Model {
	ctx, cancel := context.WithCancel(ctx)

	th := theme.DefaultTheme
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.Spinner

	return &Model{
		cfg:          cfg,
		client:       c,
		session:      sess,
		registry:     registry,
		theme:        th,
		keys:         DefaultKeyMap,
		spinner:      sp,
		log:          logging.NewLogger("app"),
		dataset:      dataset,
		subscription: subscription,
		phase:        phaseLoading,
		stream:       StreamIdle,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Init starts plugin loading and dataset resolution in parallel.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPluginsCmd(), m.resolveDatasetCmd())
}

// Err returns the terminal error, if the view failed.
func (m *Model) Err() error {
	return m.err
}

// Stream returns the current event subscription state.
func (m *Model) Stream() StreamState {
	return m.stream
}
