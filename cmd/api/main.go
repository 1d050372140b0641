// Command api serves the reading club REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/readingclub/readingclub/internal/di"
	"github.com/readingclub/readingclub/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "club api: %v\n", err)
		os.Exit(1)
	}
}

// run starts every service, then blocks until SIGINT or SIGTERM.
func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := di.NewContainer(args)
	if err := di.Bootstrap(injector); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	log := do.MustInvoke[*logger.Logger](injector)

	<-ctx.Done()
	log.Info("signal received, shutting down")

	// do shuts dependents down first: HTTP server, then store, then index.
	if err := injector.Shutdown(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
