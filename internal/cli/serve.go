package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		store storageOptions
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the action library and the live monitor over HTTP",
		Long: `Starts an HTTP server exposing the action library.

Endpoints:
  GET /                              Live monitor page
  GET /health                        Health check
  GET /api/actions                   List saved actions
  GET /api/actions/{kind}/{name}     Stored action document
  WS  /ws                            Captured events while recording

Live events are only produced by "toca record --monitor"; a standalone
server exposes the library.`,
		Example: `  toca serve
  toca serve --addr :9090 --storage redis --redis-host localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			lib, st, err := store.openLibrary(cmd, a)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(addr, server.Options{Library: lib, Logger: a.logger})

			// Graceful shutdown on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				a.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	store.addFlags(cmd)
	return cmd
}
