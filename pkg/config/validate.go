package config

import (
	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/types"
)

// Validate checks the structural invariants of a config tree: non-empty
// version and profile list, named profiles and pages, positive grid
// bounds, and button positions that are unique and inside their page.
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfigValid, "config is nil")
	}
	if cfg.Version == "" {
		return errors.New(errors.ErrConfigValid, "config version cannot be empty")
	}
	if len(cfg.Profiles) == 0 {
		return errors.New(errors.ErrConfigValid, "at least one profile must be defined")
	}

	seenProfiles := make(map[string]bool, len(cfg.Profiles))
	for pi := range cfg.Profiles {
		profile := &cfg.Profiles[pi]
		if profile.Name == "" {
			return errors.Newf(errors.ErrConfigValid, "profile %d has an empty name", pi)
		}
		if seenProfiles[profile.Name] {
			return errors.Newf(errors.ErrConfigValid, "duplicate profile name %q", profile.Name)
		}
		seenProfiles[profile.Name] = true

		if len(profile.Pages) == 0 {
			return errors.Newf(errors.ErrConfigValid, "profile %q must have at least one page", profile.Name)
		}

		for gi := range profile.Pages {
			page := &profile.Pages[gi]
			if page.Name == "" {
				return errors.Newf(errors.ErrConfigValid, "profile %q page %d has an empty name", profile.Name, gi)
			}
			if page.Rows <= 0 || page.Cols <= 0 {
				return errors.Newf(errors.ErrConfigValid,
					"page %q dimensions must be positive, got %dx%d", page.Name, page.Rows, page.Cols)
			}

			seenPositions := make(map[types.Position]bool, len(page.Buttons))
			for bi := range page.Buttons {
				button := &page.Buttons[bi]
				if !page.InBounds(button.Position) {
					return errors.Newf(errors.ErrConfigValid,
						"button position (%d,%d) exceeds page %q dimensions (%d,%d)",
						button.Position.Row, button.Position.Col, page.Name, page.Rows, page.Cols)
				}
				if seenPositions[button.Position] {
					return errors.Newf(errors.ErrConfigValid,
						"page %q has two buttons at (%d,%d)",
						page.Name, button.Position.Row, button.Position.Col)
				}
				seenPositions[button.Position] = true
				if button.Label == "" {
					return errors.Newf(errors.ErrConfigValid,
						"button at (%d,%d) on page %q has an empty label",
						button.Position.Row, button.Position.Col, page.Name)
				}
			}
		}
	}

	return nil
}
