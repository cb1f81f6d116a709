package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philly/emitter/internal/adapters/fswatch"
	greeter "github.com/philly/emitter/internal/greeter/application"
	journal "github.com/philly/emitter/internal/journal/application"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/events"
	"github.com/philly/emitter/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server  *http.Server
	bus     *eventbus.Bus
	greeter *greeter.Greeter
	journal *journal.JournalService
	watcher *fswatch.Watcher
	version string
	logger  logger.Logger
}

func NewApp(
	server *http.Server,
	bus *eventbus.Bus,
	greeter *greeter.Greeter,
	journal *journal.JournalService,
	watcher *fswatch.Watcher,
	version string,
	logger logger.Logger,
) *App {
	return &App{
		server:  server,
		bus:     bus,
		greeter: greeter,
		journal: journal,
		watcher: watcher,
		version: version,
		logger:  logger,
	}
}

// Run subscribes the built-in listeners, starts serving and handles graceful
// shutdown on SIGINT, SIGTERM or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// The journal goes first so it is attached before anything can emit
	a.journal.Subscribe()
	a.greeter.Subscribe()

	watchCtx, stopWatching := context.WithCancel(ctx)
	defer stopWatching()
	if err := a.watcher.Start(watchCtx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.server.Addr, err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server", "address", ln.Addr().String())
		serverErrors <- a.server.Serve(ln)
	}()

	a.bus.Emit(ctx, events.AppStartedTopic, events.AppStartedEvent{
		Address:   ln.Addr().String(),
		Version:   a.version,
		StartedAt: time.Now().UTC(),
	})

	var reason string
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		reason = sig.String()
	case <-ctx.Done():
		reason = ctx.Err().Error()
	}

	a.logger.Info(ctx, "shutting down server", "reason", reason)
	a.bus.Emit(context.WithoutCancel(ctx), events.AppStoppingTopic, events.AppStoppingEvent{Signal: reason})
	stopWatching()
	// No Publish may start once bus.Wait is running
	a.watcher.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to gracefully shutdown server: %w", err)
	}
	if err := a.bus.Wait(shutdownCtx); err != nil {
		a.logger.Warn(shutdownCtx, "pending publications abandoned", "error", err)
	}

	a.logger.Info(shutdownCtx, "server stopped")
	return nil
}
