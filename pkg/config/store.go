package config

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/qdeck/qdeck/pkg/types"
)

// Store persists the whole configuration tree as one YAML document.
// Saves are atomic: the document is written to a sibling temp file and
// renamed over the target, so a failed write never leaves a torn tree.
type Store struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
}

var _ types.ConfigStore = (*Store)(nil)

// NewStore creates a store persisting to path through the given filesystem.
func NewStore(filesystem types.FS, path string) *Store {
	return &Store{
		fs:     filesystem,
		path:   path,
		logger: logging.GetLogger("config.store"),
	}
}

// Path returns the location of the config document.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the config tree. If the document does not exist
// yet, a default tree is written and returned.
func (s *Store) Load() (*types.Config, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if isNotExist(err) {
			s.logger.Info().Str("path", s.path).Msg("No config found, writing defaults")
			cfg := Default()
			if err := s.Save(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config from %s", s.path)
	}

	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config from %s", s.path)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("profiles", len(cfg.Profiles)).
		Msg("Config loaded")

	return &cfg, nil
}

// Save validates cfg and writes the complete tree atomically.
func (s *Store) Save(cfg *types.Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to serialize config")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to create config directory")
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		// Best effort cleanup of the temp file; the target is untouched.
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to replace %s", s.path)
	}

	s.logger.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Config saved")
	return nil
}

// Export writes the current tree to an arbitrary path, without touching
// the store's own document.
func (s *Store) Export(cfg *types.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to serialize config for export")
	}
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to export config to %s", path)
	}
	return nil
}

// Import reads a tree from an arbitrary path, validates it, persists it as
// the store's document and returns it.
func (s *Store) Import(path string) (*types.Config, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read import from %s", path)
	}

	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse import from %s", path)
	}

	if err := s.Save(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
