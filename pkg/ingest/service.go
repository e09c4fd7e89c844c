// Package ingest turns drag and drop gestures into grid buttons. The flow
// is a small state machine driven by the host: a drag enters, hovers over
// cells, and ends in a two-phase drop where the service proposes buttons
// and the host commits or cancels the proposal.
package ingest

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/grid"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/navigation"
	"github.com/qdeck/qdeck/pkg/types"
)

// Phase of the drag gesture.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseDragging Phase = "dragging"
	PhaseHovering Phase = "hovering"
	PhaseProposed Phase = "proposed"
)

// CellResolver maps window coordinates to a grid cell, as only the host
// knows the rendered geometry. ok is false outside the grid.
type CellResolver func(x, y float64) (pos types.Position, ok bool)

// DropRequest is the host's description of a completed drop gesture.
type DropRequest struct {
	Paths []string
	X, Y  float64
}

// DropResponse is the proposal built from a drop: the buttons that will
// be placed, cell by cell, and the paths that did not fit.
type DropResponse struct {
	ProfileIndex int
	PageIndex    int
	Placements   []grid.Op
	Discarded    []string
}

// Service is the drag and drop coordinator. Methods are safe for
// concurrent use; the host drives them from its event loop.
type Service struct {
	mu       sync.Mutex
	phase    Phase
	paths    []string
	hover    *types.Position
	proposal *DropResponse

	engine   *navigation.Engine
	space    *grid.Space
	resolver CellResolver
	logger   zerolog.Logger
}

func NewService(engine *navigation.Engine, space *grid.Space, resolver CellResolver) *Service {
	return &Service{
		phase:    PhaseIdle,
		engine:   engine,
		space:    space,
		resolver: resolver,
		logger:   logging.GetLogger("ingest"),
	}
}

// Phase returns the current gesture phase.
func (s *Service) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// DragEnter starts a gesture with the dragged paths.
func (s *Service) DragEnter(paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle {
		return errors.Newf(errors.ErrDropPhase, "drag entered while %s", s.phase)
	}
	if len(paths) == 0 {
		return errors.New(errors.ErrDropRejected, "drag carries no paths")
	}

	s.phase = PhaseDragging
	s.paths = append([]string(nil), paths...)
	s.logger.Debug().Int("paths", len(paths)).Msg("Drag entered")
	return nil
}

// Hover tracks the cell under the cursor. The hovered cell, if any, is
// returned so the host can highlight it.
func (s *Service) Hover(x, y float64) (*types.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseDragging && s.phase != PhaseHovering {
		return nil, errors.Newf(errors.ErrDropPhase, "hover while %s", s.phase)
	}

	if pos, ok := s.resolver(x, y); ok {
		s.phase = PhaseHovering
		s.hover = &pos
		return &pos, nil
	}
	s.phase = PhaseDragging
	s.hover = nil
	return nil, nil
}

// Drop closes the gesture and builds a placement proposal. Files are laid
// out row major starting at the drop cell, skipping occupied cells; files
// that walk off the end of the grid are discarded. The proposal is not
// applied until Commit.
func (s *Service) Drop(req DropRequest) (*DropResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseDragging && s.phase != PhaseHovering {
		return nil, errors.Newf(errors.ErrDropPhase, "drop while %s", s.phase)
	}
	if len(req.Paths) > 0 {
		s.paths = append([]string(nil), req.Paths...)
	}
	if len(s.paths) == 0 {
		s.reset()
		return nil, errors.New(errors.ErrDropRejected, "drop carries no paths")
	}

	start, ok := s.resolver(req.X, req.Y)
	if !ok {
		s.reset()
		return nil, errors.Newf(errors.ErrDropRejected, "drop at (%.0f,%.0f) is outside the grid", req.X, req.Y)
	}

	ctx := s.engine.Context()
	page := s.engine.Snapshot().Profiles[ctx.ProfileIndex].Pages[ctx.PageIndex]
	if !page.InBounds(start) {
		s.reset()
		return nil, errors.Newf(errors.ErrDropRejected,
			"cell (%d,%d) outside %dx%d page", start.Row, start.Col, page.Rows, page.Cols)
	}

	resp := &DropResponse{ProfileIndex: ctx.ProfileIndex, PageIndex: ctx.PageIndex}
	pos := start
	for _, path := range s.paths {
		pos, ok = nextFree(&page, pos)
		if !ok {
			resp.Discarded = append(resp.Discarded, path)
			continue
		}
		button := ButtonForPath(path)
		button.Position = pos
		resp.Placements = append(resp.Placements, grid.Op{Position: pos, Button: &button})
		pos = advance(&page, pos)
	}

	s.phase = PhaseProposed
	s.proposal = resp
	s.logger.Debug().
		Int("placed", len(resp.Placements)).
		Int("discarded", len(resp.Discarded)).
		Msg("Drop proposed")
	return resp, nil
}

// Commit applies the pending proposal as one grid batch and resets the
// gesture. Returns the operation id of the applied batch, empty when the
// proposal placed nothing.
func (s *Service) Commit() (string, error) {
	s.mu.Lock()
	if s.phase != PhaseProposed {
		s.mu.Unlock()
		return "", errors.Newf(errors.ErrDropPhase, "commit while %s", s.phase)
	}
	proposal := s.proposal
	s.reset()
	s.mu.Unlock()

	if len(proposal.Placements) == 0 {
		return "", nil
	}
	return s.space.ApplyBatch(proposal.ProfileIndex, proposal.PageIndex,
		types.UndoAddButtons, proposal.Placements)
}

// Cancel abandons the gesture from any phase.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Service) reset() {
	s.phase = PhaseIdle
	s.paths = nil
	s.hover = nil
	s.proposal = nil
}

// nextFree returns the first empty cell at or after pos in row major
// order, or ok false when the walk leaves the grid.
func nextFree(page *types.Page, pos types.Position) (types.Position, bool) {
	for page.InBounds(pos) {
		if page.ButtonAt(pos) == nil {
			return pos, true
		}
		pos = advance(page, pos)
	}
	return types.Position{}, false
}

// advance steps one cell right, wrapping to the next row. The returned
// position is out of bounds after the last cell.
func advance(page *types.Page, pos types.Position) types.Position {
	pos.Col++
	if pos.Col > page.Cols {
		pos.Col = 1
		pos.Row++
	}
	return pos
}
