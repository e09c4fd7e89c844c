package types

import "io/fs"

// FS abstracts the filesystem operations the runtime needs, so stores can
// run against the real OS filesystem in production and a memory filesystem
// in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// ConfigStore is the whole-tree persistence contract. There are no
// partial updates: Load returns the complete tree and Save replaces it.
type ConfigStore interface {
	Load() (*Config, error)
	Save(cfg *Config) error
}
