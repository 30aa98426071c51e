// Package bootstrap provides application lifecycle helpers and wires the combination service.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/at-ishikawa/wordcraft/internal/combination"
	"github.com/at-ishikawa/wordcraft/internal/config"
	"github.com/at-ishikawa/wordcraft/internal/database"
	"github.com/at-ishikawa/wordcraft/internal/inference/provider"
	"github.com/at-ishikawa/wordcraft/internal/paircache"
)

// App manages application lifecycle with graceful shutdown support.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

// New creates a new App.
func New() *App {
	return &App{}
}

// AddShutdownHook registers a function to call during graceful shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run sets up signal handling and executes the run function.
// On interrupt or SIGTERM, it calls registered shutdown hooks in LIFO order.
// If run returns an error before a signal, that error is returned.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.Close(context.Background())
	case err := <-errCh:
		return err
	}
}

// Close runs the registered shutdown hooks in LIFO order once and forgets them.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenCache connects to the configured database, creates the schema and closes the
// connection on shutdown.
func (a *App) OpenCache(ctx context.Context, cfg config.DatabaseConfig) (*paircache.DBRepository, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Connect > %w", err)
	}
	a.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	if err := paircache.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("paircache.Migrate > %w", err)
	}
	return paircache.NewDBRepository(db), nil
}

// NewCombiner wires the pair cache and the configured engine into a Combiner.
func (a *App) NewCombiner(ctx context.Context, cfg *config.Config) (*combination.Combiner, error) {
	cache, err := a.OpenCache(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	engine, err := provider.NewEngine(ctx, cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("provider.NewEngine > %w", err)
	}
	a.AddShutdownHook(func(context.Context) error {
		return engine.Close()
	})

	return combination.NewCombiner(cache, engine,
		combination.WithLockStripes(cfg.Combination.LockStripes),
	), nil
}
