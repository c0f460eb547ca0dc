package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lenslab/lens/client"
)

// How long to wait before re-asking for a dataset that is still preparing.
const datasetPollInterval = 500 * time.Millisecond

type pluginsLoadedMsg struct {
	err error
}

type datasetResolvedMsg struct {
	dataset *client.Dataset
	ready   bool
	err     error
}

type pollDatasetMsg struct{}

type subscribedMsg struct {
	events <-chan client.Event
	err    error
}

type stateUpdateMsg struct {
	event client.Event
}

type streamClosedMsg struct{}

func (m *Model) loadPluginsCmd() tea.Cmd {
	return func() tea.Msg {
		var dir string
		var disabled []string
		if m.cfg.Plugins != nil {
			dir = m.cfg.Plugins.Dir
			disabled = m.cfg.Plugins.Disabled
		}
		if dir == "" {
			return pluginsLoadedMsg{}
		}
		return pluginsLoadedMsg{err: m.registry.LoadDir(dir, disabled)}
	}
}

func (m *Model) resolveDatasetCmd() tea.Cmd {
	return func() tea.Msg {
		ds, ready, err := m.client.GetDataset(m.ctx, m.dataset)
		return datasetResolvedMsg{dataset: ds, ready: ready, err: err}
	}
}

func (m *Model) subscribeCmd() tea.Cmd {
	return func() tea.Msg {
		events, err := m.client.Subscribe(m.ctx, m.dataset, m.subscription)
		return subscribedMsg{events: events, err: err}
	}
}

// waitForEvent blocks on the subscription channel and reports either the
// next event or the channel closing.
func waitForEvent(events <-chan client.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return stateUpdateMsg{event: ev}
	}
}

// Update handles messages and drives the loading → error → ready sequence.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pluginsLoadedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Error("Plugin loading failed")
			m.phase = phaseError
			m.err = msg.err
			return m, nil
		}
		m.pluginsLoaded = true
		return m, m.maybeReady()

	case datasetResolvedMsg:
		if m.phase != phaseLoading {
			// A late resolution must not open a stream for a view that
			// will never render.
			return m, nil
		}
		if msg.err != nil {
			m.phase = phaseError
			m.err = msg.err
			return m, nil
		}
		if !msg.ready {
			// Still preparing: keep the loading view and ask again.
			return m, tea.Tick(datasetPollInterval, func(time.Time) tea.Msg {
				return pollDatasetMsg{}
			})
		}
		if msg.dataset == nil {
			m.phase = phaseNotFound
			return m, nil
		}
		m.info = msg.dataset
		m.stream = StreamConnecting
		return m, tea.Batch(m.subscribeCmd(), m.maybeReady())

	case pollDatasetMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		return m, m.resolveDatasetCmd()

	case subscribedMsg:
		if msg.err != nil {
			m.phase = phaseError
			m.err = msg.err
			return m, nil
		}
		m.events = msg.events
		return m, waitForEvent(m.events)

	case stateUpdateMsg:
		m.stream = StreamStreaming
		m.session.ApplyDescription(msg.event.Description)
		return m, waitForEvent(m.events)

	case streamClosedMsg:
		m.stream = StreamClosed
		m.session.SetModalVisible(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// maybeReady flips the view out of loading once plugins and the dataset
// are both resolved.
func (m *Model) maybeReady() tea.Cmd {
	if m.phase == phaseLoading && m.pluginsLoaded && m.info != nil {
		m.phase = phaseReady
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.CloseModal):
		if m.session.ModalVisible() {
			m.session.SetModalVisible(false)
			return m, nil
		}
		m.cancel()
		return m, tea.Quit
	}

	if m.phase != phaseReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns())

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns())

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Select):
		if id := m.cursorSample(); id != "" {
			m.session.ToggleSelected(id)
		}

	case key.Matches(msg, m.keys.OpenModal):
		if m.cursorSample() != "" {
			m.session.SetModalVisible(true)
		}

	case key.Matches(msg, m.keys.ClearFilters):
		m.session.SetFilters(m.session.ModalVisible(), nil)
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.info == nil || len(m.info.Samples) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.info.Samples) {
		return
	}
	m.cursor = next
}

func (m *Model) cursorSample() string {
	if m.info == nil || m.cursor >= len(m.info.Samples) {
		return ""
	}
	return m.info.Samples[m.cursor].ID
}

// columns derives the grid width from the terminal size.
func (m *Model) columns() int {
	cols := m.width / gridCellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}
