package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lenslab/lens/client"
	"github.com/lenslab/lens/config"
	"github.com/lenslab/lens/errors"
	"github.com/lenslab/lens/logging"
	"github.com/lenslab/lens/plugin"
	"github.com/lenslab/lens/session"
	"github.com/lenslab/lens/store"
	"github.com/lenslab/lens/tui"
)

// noopSender stands in for the outbound channel when the socket could not
// be opened. Sends fail; callers log and proceed, matching the send
// contract.
type noopSender struct{}

func (noopSender) Send(messageType string, _ map[string]interface{}) error {
	return errors.New(errors.ErrCodeNotConnected, "outbound channel is not connected").
		WithDetail("type", messageType)
}

// Run starts the dataset view for the named dataset and blocks until the
// user quits.
func Run(cfg *config.Config, dataset string) error {
	tui.InitializeTUI(cfg)
	log := logging.NewLogger("app")

	c := client.NewRemoteClient(cfg.Server.URL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Plugins != nil && cfg.Plugins.Dir != "" && (cfg.Plugins.Watch == nil || *cfg.Plugins.Watch) {
		w, err := plugin.NewWatcher(plugin.Default(), cfg.Plugins.Dir, cfg.Plugins.Disabled, 0, nil)
		if err != nil {
			log.WithError(err).Warn("Plugin watcher unavailable, manifest changes will not be picked up")
		} else {
			defer w.Close()
			go w.Start(ctx)
		}
	}

	subscription := NewSubscriptionID(dataset)

	var sender session.Sender
	sock, err := c.Connect(ctx, dataset, subscription)
	if err != nil {
		log.WithError(err).Warn("Outbound channel unavailable, filter updates will not be sent")
		sender = noopSender{}
	} else {
		defer sock.Close()
		sender = sock
	}

	sess := session.New(store.New(), sender)
	m := New(ctx, cfg, c, sess, plugin.Default(), dataset, subscription)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}
