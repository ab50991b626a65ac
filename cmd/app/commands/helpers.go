// Package commands implements the server, migrate and create-secret commands.
package commands

import (
	"context"
	"log/slog"

	"github.com/allisson/identity/internal/app"
)

// closeContainer releases the container's resources, logging instead of returning
// the error so it can run deferred after the command's own error.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}
