package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yanqian/wellness-hub/internal/infra/config"
)

// Lifecycle collects release hooks for resources opened during wiring
// (database pools, cache clients). Hooks run in reverse order.
type Lifecycle struct {
	mu    sync.Mutex
	hooks []namedHook
}

type namedHook struct {
	name string
	fn   func()
}

// NewLifecycle constructs an empty Lifecycle.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// OnClose registers a release hook.
func (l *Lifecycle) OnClose(name string, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, namedHook{name: name, fn: fn})
}

// Close runs every hook once, newest first.
func (l *Lifecycle) Close(logger *slog.Logger) {
	l.mu.Lock()
	hooks := l.hooks
	l.hooks = nil
	l.mu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i].fn()
		logger.Info("resource released", "resource", hooks[i].name)
	}
}

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	lifecycle *Lifecycle
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, lifecycle *Lifecycle) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, lifecycle: lifecycle}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	defer a.lifecycle.Close(a.logger)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
