// Package cli assembles the runtime for the qdeck command line and renders
// its output. The heavy lifting lives in pkg/; this package only wires the
// pieces together per invocation.
package cli

import (
	"context"

	"github.com/qdeck/qdeck/pkg/actions"
	"github.com/qdeck/qdeck/pkg/config"
	"github.com/qdeck/qdeck/pkg/filesystem"
	"github.com/qdeck/qdeck/pkg/grid"
	"github.com/qdeck/qdeck/pkg/icons"
	"github.com/qdeck/qdeck/pkg/ingest"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/navigation"
	"github.com/qdeck/qdeck/pkg/paths"
	"github.com/qdeck/qdeck/pkg/state"
	"github.com/qdeck/qdeck/pkg/types"
)

// App is one assembled qdeck runtime: settings, stores, navigation, grid
// mutation, action dispatch and icon resolution over the OS filesystem.
type App struct {
	Paths      *paths.Paths
	Settings   *config.Settings
	Store      *config.Store
	Engine     *navigation.Engine
	Space      *grid.Space
	Dispatcher *actions.Dispatcher
	Icons      *icons.Service
	Cache      *icons.Cache
}

// Open loads everything from disk and restores the last navigation
// position. A missing config tree is bootstrapped with defaults.
func Open() (*App, error) {
	p := paths.New()
	fs := filesystem.NewOS()
	logger := logging.GetLogger("cli")

	settings, err := config.LoadSettings(p.SettingsFile())
	if err != nil {
		return nil, err
	}

	store := config.NewStore(fs, p.ConfigFile())
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	states := state.NewStore(fs, p.StateFile())
	pointer, err := states.Load()
	if err != nil {
		// A corrupt pointer should never block startup.
		logger.Warn().Err(err).Msg("Ignoring unreadable navigation state")
		pointer = state.Pointer{}
	}

	engine := navigation.New(cfg, states)
	engine.Restore(pointer)

	cache := icons.NewCache(settings.IconCache.QuotaBytes)
	if interval := settings.IconCache.CleanupInterval; interval > 0 {
		// Entries unused for a full sweep interval are dropped on the
		// next tick. Runs for the lifetime of the process.
		cache.StartCleanup(context.Background(), interval, interval)
	}

	return &App{
		Paths:      p,
		Settings:   settings,
		Store:      store,
		Engine:     engine,
		Space:      grid.NewSpace(store, engine),
		Dispatcher: actions.NewDefaultDispatcher(actions.NewRunner(), settings.Terminal.Default),
		Icons:      icons.NewService(fs, cache, nil),
		Cache:      cache,
	}, nil
}

// Drops builds a drop coordinator that places files starting at a fixed
// cell. The CLI has no pointer coordinates, so every drop resolves there.
func (a *App) Drops(pos types.Position) *ingest.Service {
	resolver := func(x, y float64) (types.Position, bool) {
		return pos, true
	}
	return ingest.NewService(a.Engine, a.Space, resolver)
}

// CurrentButton returns the button at pos on the current page, or nil.
func (a *App) CurrentButton(pos types.Position) *types.Button {
	ctx := a.Engine.Context()
	page := &a.Engine.Snapshot().Profiles[ctx.ProfileIndex].Pages[ctx.PageIndex]
	return page.ButtonAt(pos)
}
