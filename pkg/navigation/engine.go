// Package navigation tracks which profile and page are active and emits a
// post-switch snapshot to subscribers after every successful switch.
//
// The engine remembers the last active page of each profile, so switching
// away and back restores the page the user left, and it persists its
// pointer through a state store so the position survives restarts.
package navigation

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/state"
	"github.com/qdeck/qdeck/pkg/types"
)

// Listener receives the aggregated snapshot after each successful switch.
type Listener func(types.NavigationContext)

// Engine is the navigation state machine. All methods are safe for
// concurrent use.
type Engine struct {
	mu         sync.RWMutex
	cfg        *types.Config
	profileIdx int
	pageIdx    int
	lastActive map[string]int // profile name -> last active page index

	store     *state.Store // optional, nil disables persistence
	listeners []Listener
	logger    zerolog.Logger
}

// New creates an engine positioned at the first profile's first page.
// store may be nil when pointer persistence is not wanted.
func New(cfg *types.Config, store *state.Store) *Engine {
	return &Engine{
		cfg:        cfg,
		lastActive: make(map[string]int),
		store:      store,
		logger:     logging.GetLogger("navigation"),
	}
}

// Restore positions the engine from a persisted pointer, clamping stale
// indices back into range instead of failing.
func (e *Engine) Restore(p state.Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profileIdx = clamp(p.ProfileIndex, len(e.cfg.Profiles))
	e.pageIdx = clamp(p.PageIndex, len(e.cfg.Profiles[e.profileIdx].Pages))
	for name, idx := range p.LastActivePages {
		if pi := e.cfg.ProfileIndexByName(name); pi >= 0 {
			e.lastActive[name] = clamp(idx, len(e.cfg.Profiles[pi].Pages))
		}
	}
}

func clamp(idx, n int) int {
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

// Subscribe registers a listener for post-switch snapshots. Listeners are
// invoked synchronously, outside the engine lock.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Profiles lists all profiles with their last active page.
func (e *Engine) Profiles() []types.ProfileInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.ProfileInfo, len(e.cfg.Profiles))
	for i := range e.cfg.Profiles {
		p := &e.cfg.Profiles[i]
		current := e.lastActive[p.Name]
		if i == e.profileIdx {
			current = e.pageIdx
		}
		out[i] = types.ProfileInfo{
			Name:             p.Name,
			Index:            i,
			PageCount:        len(p.Pages),
			CurrentPageIndex: current,
			Hotkey:           p.Hotkey,
		}
	}
	return out
}

// CurrentProfile describes the active profile.
func (e *Engine) CurrentProfile() types.ProfileInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p := &e.cfg.Profiles[e.profileIdx]
	return types.ProfileInfo{
		Name:             p.Name,
		Index:            e.profileIdx,
		PageCount:        len(p.Pages),
		CurrentPageIndex: e.pageIdx,
		Hotkey:           p.Hotkey,
	}
}

// Pages lists the pages of the active profile.
func (e *Engine) Pages() []types.PageInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pages := e.cfg.Profiles[e.profileIdx].Pages
	out := make([]types.PageInfo, len(pages))
	for i := range pages {
		out[i] = pageInfo(&pages[i], i)
	}
	return out
}

// CurrentPage describes the active page.
func (e *Engine) CurrentPage() types.PageInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return pageInfo(&e.cfg.Profiles[e.profileIdx].Pages[e.pageIdx], e.pageIdx)
}

func pageInfo(p *types.Page, idx int) types.PageInfo {
	return types.PageInfo{
		Name:        p.Name,
		Index:       idx,
		Rows:        p.Rows,
		Cols:        p.Cols,
		ButtonCount: len(p.Buttons),
	}
}

// SwitchToProfile activates the profile at index and restores its last
// active page.
func (e *Engine) SwitchToProfile(index int) (types.NavigationContext, error) {
	e.mu.Lock()
	if index < 0 || index >= len(e.cfg.Profiles) {
		e.mu.Unlock()
		return types.NavigationContext{}, errors.Newf(errors.ErrProfileNotFound,
			"profile index %d out of range (have %d profiles)", index, len(e.cfg.Profiles))
	}

	// Remember where we were in the profile we are leaving.
	e.lastActive[e.cfg.Profiles[e.profileIdx].Name] = e.pageIdx

	e.profileIdx = index
	target := &e.cfg.Profiles[index]
	e.pageIdx = clamp(e.lastActive[target.Name], len(target.Pages))

	e.logger.Debug().Str("profile", target.Name).Int("page", e.pageIdx).Msg("Switched profile")
	return e.commitLocked()
}

// SwitchToProfileByName activates the named profile.
func (e *Engine) SwitchToProfileByName(name string) (types.NavigationContext, error) {
	e.mu.RLock()
	idx := e.cfg.ProfileIndexByName(name)
	e.mu.RUnlock()
	if idx < 0 {
		return types.NavigationContext{}, errors.Newf(errors.ErrProfileNotFound, "no profile named %q", name)
	}
	return e.SwitchToProfile(idx)
}

// SwitchToPage activates the page at index within the active profile.
func (e *Engine) SwitchToPage(index int) (types.NavigationContext, error) {
	e.mu.Lock()
	pages := e.cfg.Profiles[e.profileIdx].Pages
	if index < 0 || index >= len(pages) {
		e.mu.Unlock()
		return types.NavigationContext{}, errors.Newf(errors.ErrPageNotFound,
			"page index %d out of range (have %d pages)", index, len(pages))
	}
	e.pageIdx = index
	return e.commitLocked()
}

// NextPage advances to the following page. At the last page it returns
// nil without moving; callers render the boundary however they like.
func (e *Engine) NextPage() (*types.NavigationContext, error) {
	e.mu.Lock()
	if e.pageIdx+1 >= len(e.cfg.Profiles[e.profileIdx].Pages) {
		e.mu.Unlock()
		return nil, nil
	}
	e.pageIdx++
	ctx, err := e.commitLocked()
	if err != nil {
		return nil, err
	}
	return &ctx, nil
}

// PreviousPage steps back one page, returning nil at the first page.
func (e *Engine) PreviousPage() (*types.NavigationContext, error) {
	e.mu.Lock()
	if e.pageIdx == 0 {
		e.mu.Unlock()
		return nil, nil
	}
	e.pageIdx--
	ctx, err := e.commitLocked()
	if err != nil {
		return nil, err
	}
	return &ctx, nil
}

// Context returns the current aggregated snapshot.
func (e *Engine) Context() types.NavigationContext {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.contextLocked()
}

func (e *Engine) contextLocked() types.NavigationContext {
	profile := &e.cfg.Profiles[e.profileIdx]
	page := &profile.Pages[e.pageIdx]
	return types.NavigationContext{
		ProfileName:     profile.Name,
		ProfileIndex:    e.profileIdx,
		PageName:        page.Name,
		PageIndex:       e.pageIdx,
		TotalProfiles:   len(e.cfg.Profiles),
		TotalPages:      len(profile.Pages),
		HasPreviousPage: e.pageIdx > 0,
		HasNextPage:     e.pageIdx < len(profile.Pages)-1,
	}
}

// commitLocked snapshots the post-switch state, persists the pointer,
// releases the lock and notifies listeners. Persistence failures are
// logged, not fatal; the in-memory position is already valid.
func (e *Engine) commitLocked() (types.NavigationContext, error) {
	ctx := e.contextLocked()
	e.lastActive[ctx.ProfileName] = ctx.PageIndex
	pointer := e.pointerLocked()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.Save(pointer); err != nil {
			e.logger.Warn().Err(err).Msg("Failed to persist navigation state")
		}
	}
	for _, l := range listeners {
		l(ctx)
	}
	return ctx, nil
}

func (e *Engine) pointerLocked() state.Pointer {
	last := make(map[string]int, len(e.lastActive))
	for k, v := range e.lastActive {
		last[k] = v
	}
	return state.Pointer{
		ProfileIndex:    e.profileIdx,
		PageIndex:       e.pageIdx,
		LastActivePages: last,
	}
}

// Snapshot returns the config tree the engine is currently reading.
func (e *Engine) Snapshot() *types.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// Replace swaps in a new config tree after a successful persistence
// write, clamping the current position into the new tree's bounds.
func (e *Engine) Replace(cfg *types.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	e.profileIdx = clamp(e.profileIdx, len(cfg.Profiles))
	e.pageIdx = clamp(e.pageIdx, len(cfg.Profiles[e.profileIdx].Pages))
}
