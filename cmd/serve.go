package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lenslab/lens/client"
	"github.com/lenslab/lens/internal/server"
	"github.com/lenslab/lens/logging"
)

// NewServeCmd returns the development server command.
func NewServeCmd() *cobra.Command {
	var addr string
	var demo bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development dataset server",
		Long: `Run a local dataset server exposing the event stream, the dataset
API, and the websocket message endpoint. Intended for development and for
exercising the client without a production deployment.`,
		Example: `  # Serve on the default port with the demo dataset
  lens serve --demo

  # Serve on a custom address
  lens serve --addr 127.0.0.1:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("serve")

			store := server.NewStore()
			if demo {
				store.AddDataset(demoDataset())
				logger.Info("Seeded demo dataset 'quickstart'")
			}

			srv := server.New(logger, store)

			// Graceful shutdown on SIGINT/SIGTERM
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.WithError(err).Error("Shutdown failed")
				}
			}()

			if err := srv.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5151", "Address to listen on")
	cmd.Flags().BoolVar(&demo, "demo", false, "Seed a demo dataset")

	return cmd
}

func demoDataset() client.Dataset {
	samples := make([]client.Sample, 0, 12)
	for i := 0; i < 12; i++ {
		samples = append(samples, client.Sample{
			ID:       fmt.Sprintf("sample-%03d", i),
			Filepath: fmt.Sprintf("/data/quickstart/%03d.jpg", i),
			Tags:     []string{"demo"},
		})
	}
	return client.Dataset{
		Name:        "quickstart",
		MediaType:   "image",
		SampleCount: len(samples),
		Samples:     samples,
	}
}
