// Package state persists the small navigation pointer that survives
// restarts: which profile and page were active, and the last active page
// per profile. It is kept separate from the config tree so frequent
// navigation does not rewrite the whole document.
package state

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/types"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Pointer records where the user was. Indices are zero-based and may be
// stale relative to the current config tree; callers clamp on restore.
type Pointer struct {
	ProfileIndex    int            `yaml:"profile_index"`
	PageIndex       int            `yaml:"page_index"`
	LastActivePages map[string]int `yaml:"last_active_pages,omitempty"`
}

// Store persists the pointer as a YAML document, atomically.
type Store struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
}

func NewStore(filesystem types.FS, path string) *Store {
	return &Store{
		fs:     filesystem,
		path:   path,
		logger: logging.GetLogger("state"),
	}
}

// Load reads the persisted pointer. A missing document is not an error;
// the zero pointer is returned instead.
func (s *Store) Load() (Pointer, error) {
	var p Pointer
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, errors.Wrapf(err, errors.ErrStateLoad, "failed to read state from %s", s.path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pointer{}, errors.Wrapf(err, errors.ErrStateLoad, "failed to parse state from %s", s.path)
	}
	return p, nil
}

// Save writes the pointer through a temp file and rename.
func (s *Store) Save(p Pointer) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "failed to serialize state")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "failed to create state directory")
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrStateSave, "failed to replace %s", s.path)
	}

	s.logger.Trace().Int("profile", p.ProfileIndex).Int("page", p.PageIndex).Msg("State saved")
	return nil
}
