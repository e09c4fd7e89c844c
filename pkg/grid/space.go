// Package grid mutates button grids with persist-then-swap semantics:
// every mutation is applied to a clone of the config tree, the clone is
// written through the store, and only then does the live tree get swapped.
// A failed write leaves both memory and disk untouched.
package grid

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/navigation"
	"github.com/qdeck/qdeck/pkg/types"
)

// Op is one cell mutation within a batch. A nil Button clears the cell at
// Position; otherwise the button is placed there, replacing any occupant.
type Op struct {
	Position types.Position
	Button   *types.Button
}

// Space applies grid mutations against the engine's config tree.
type Space struct {
	mu      sync.Mutex
	store   types.ConfigStore
	engine  *navigation.Engine
	undo    types.UndoEntry
	hasUndo bool
	logger  zerolog.Logger
}

func NewSpace(store types.ConfigStore, engine *navigation.Engine) *Space {
	return &Space{
		store:  store,
		engine: engine,
		logger: logging.GetLogger("grid"),
	}
}

// AddButton places a button on the given page, replacing any existing
// occupant of its position.
func (s *Space) AddButton(profileIdx, pageIdx int, button types.Button) (string, error) {
	return s.ApplyBatch(profileIdx, pageIdx, types.UndoAddButtons,
		[]Op{{Position: button.Position, Button: &button}})
}

// RemoveButton clears the given position. Clearing an already empty cell
// is a no-op: nothing is written and the undo slot is untouched.
func (s *Space) RemoveButton(profileIdx, pageIdx int, pos types.Position) (string, error) {
	s.mu.Lock()
	cfg := s.engine.Snapshot()
	page, err := pageAt(cfg, profileIdx, pageIdx)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if !page.InBounds(pos) {
		s.mu.Unlock()
		return "", errors.Newf(errors.ErrPositionBounds,
			"position (%d,%d) outside %dx%d page", pos.Row, pos.Col, page.Rows, page.Cols)
	}
	if page.ButtonAt(pos) == nil {
		s.mu.Unlock()
		return "", nil
	}
	s.mu.Unlock()

	return s.ApplyBatch(profileIdx, pageIdx, types.UndoRemoveButtons, []Op{{Position: pos}})
}

// ApplyBatch applies all ops as one transaction: one clone, one write, one
// undo entry. Returns the operation id of the recorded undo entry.
func (s *Space) ApplyBatch(profileIdx, pageIdx int, opType string, ops []Op) (string, error) {
	if len(ops) == 0 {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.engine.Snapshot().Clone()
	page, err := pageAt(cfg, profileIdx, pageIdx)
	if err != nil {
		return "", err
	}

	entry := types.UndoEntry{
		OperationID:   uuid.NewString(),
		OperationType: opType,
		ProfileIndex:  profileIdx,
		PageIndex:     pageIdx,
		Timestamp:     time.Now(),
	}

	for _, op := range ops {
		if !page.InBounds(op.Position) {
			return "", errors.Newf(errors.ErrPositionBounds,
				"position (%d,%d) outside %dx%d page",
				op.Position.Row, op.Position.Col, page.Rows, page.Cols)
		}

		entry.AffectedPositions = append(entry.AffectedPositions, op.Position)
		if prev := page.ButtonAt(op.Position); prev != nil {
			c := prev.Clone()
			entry.Previous = append(entry.Previous, &c)
		} else {
			entry.Previous = append(entry.Previous, nil)
		}

		removeAt(page, op.Position)
		if op.Button != nil {
			b := op.Button.Clone()
			b.Position = op.Position
			page.Buttons = append(page.Buttons, b)
		}
	}

	if err := s.commit(cfg); err != nil {
		return "", err
	}

	s.undo = entry
	s.hasUndo = true
	s.logger.Debug().
		Str("op", opType).
		Int("cells", len(ops)).
		Str("operation_id", entry.OperationID).
		Msg("Grid batch applied")
	return entry.OperationID, nil
}

// ResizePage changes the page dimensions, discarding buttons that fall
// outside the new bounds. The discarded buttons go into the undo slot.
func (s *Space) ResizePage(profileIdx, pageIdx, rows, cols int) (string, error) {
	if rows < 1 || cols < 1 {
		return "", errors.Newf(errors.ErrGridBounds, "invalid page size %dx%d", rows, cols)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.engine.Snapshot().Clone()
	page, err := pageAt(cfg, profileIdx, pageIdx)
	if err != nil {
		return "", err
	}

	entry := types.UndoEntry{
		OperationID:   uuid.NewString(),
		OperationType: types.UndoResizePage,
		ProfileIndex:  profileIdx,
		PageIndex:     pageIdx,
		PreviousRows:  page.Rows,
		PreviousCols:  page.Cols,
		Timestamp:     time.Now(),
	}

	kept := page.Buttons[:0]
	for i := range page.Buttons {
		b := page.Buttons[i]
		if b.Position.Row <= rows && b.Position.Col <= cols {
			kept = append(kept, b)
			continue
		}
		c := b.Clone()
		entry.AffectedPositions = append(entry.AffectedPositions, b.Position)
		entry.Previous = append(entry.Previous, &c)
	}
	page.Buttons = kept
	page.Rows = rows
	page.Cols = cols

	if err := s.commit(cfg); err != nil {
		return "", err
	}

	s.undo = entry
	s.hasUndo = true
	s.logger.Info().
		Int("rows", rows).
		Int("cols", cols).
		Int("discarded", len(entry.AffectedPositions)).
		Msg("Page resized")
	return entry.OperationID, nil
}

// CanUndo reports whether the undo slot holds an entry.
func (s *Space) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasUndo
}

// LastOperation returns the entry in the undo slot, if any.
func (s *Space) LastOperation() (types.UndoEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo, s.hasUndo
}

// Undo reverts the last mutating batch in a single transaction and clears
// the slot. The undo itself is not undoable.
func (s *Space) Undo() (types.UndoEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasUndo {
		return types.UndoEntry{}, errors.New(errors.ErrNothingToUndo, "nothing to undo")
	}
	entry := s.undo

	cfg := s.engine.Snapshot().Clone()
	page, err := pageAt(cfg, entry.ProfileIndex, entry.PageIndex)
	if err != nil {
		return types.UndoEntry{}, err
	}

	if entry.PreviousRows > 0 {
		page.Rows = entry.PreviousRows
		page.Cols = entry.PreviousCols
	}
	for i, pos := range entry.AffectedPositions {
		removeAt(page, pos)
		if prev := entry.Previous[i]; prev != nil {
			page.Buttons = append(page.Buttons, prev.Clone())
		}
	}

	if err := s.commit(cfg); err != nil {
		return types.UndoEntry{}, err
	}

	s.hasUndo = false
	s.undo = types.UndoEntry{}
	s.logger.Info().Str("op", entry.OperationType).Str("operation_id", entry.OperationID).Msg("Undone")
	return entry, nil
}

// commit persists the mutated clone and, only on success, makes it the
// live tree.
func (s *Space) commit(cfg *types.Config) error {
	if err := s.store.Save(cfg); err != nil {
		return err
	}
	s.engine.Replace(cfg)
	return nil
}

func pageAt(cfg *types.Config, profileIdx, pageIdx int) (*types.Page, error) {
	if profileIdx < 0 || profileIdx >= len(cfg.Profiles) {
		return nil, errors.Newf(errors.ErrProfileNotFound, "profile index %d out of range", profileIdx)
	}
	profile := &cfg.Profiles[profileIdx]
	if pageIdx < 0 || pageIdx >= len(profile.Pages) {
		return nil, errors.Newf(errors.ErrPageNotFound, "page index %d out of range", pageIdx)
	}
	return &profile.Pages[pageIdx], nil
}

func removeAt(page *types.Page, pos types.Position) {
	for i := range page.Buttons {
		if page.Buttons[i].Position == pos {
			page.Buttons = append(page.Buttons[:i], page.Buttons[i+1:]...)
			return
		}
	}
}
