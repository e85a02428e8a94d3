package cli

import (
	"context"
	"log/slog"

	"github.com/kilnhq/kilnd/internal/server"
)

// Represents the 'kilnd start' command.
type StartCmd struct{}

// Executes the start command.
//
// Starts the build daemon on a Unix domain socket and blocks until the
// context is cancelled (e.g. via SIGINT or SIGTERM) or the daemon is
// stopped by a shutdown command over the socket.
func (c *StartCmd) Run(ctx context.Context) error {
	srv, err := server.New(server.Config{
		SocketPath: RootCmd.Socket,
	})
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("kilnd is running")

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case <-srv.Done():
		slog.Info("stopped via socket")
	}

	return srv.Stop()
}
