// Package testutil provides shared helpers for qdeck tests: config tree
// fixtures and a filesystem wrapper that fails on demand to exercise
// persistence-failure paths.
package testutil

import (
	"io/fs"

	"github.com/qdeck/qdeck/pkg/types"
)

// TestConfig builds a two-profile tree used across navigation, grid and
// ingest tests: "Profile1" with a 3x4 and a 2x3 page, "Profile2" with a
// single 4x5 page.
func TestConfig() *types.Config {
	return &types.Config{
		Version: types.ConfigVersion,
		Profiles: []types.Profile{
			{
				Name:   "Profile1",
				Hotkey: "Ctrl+1",
				Pages: []types.Page{
					{Name: "Page1", Rows: 3, Cols: 4, Buttons: []types.Button{}},
					{Name: "Page2", Rows: 2, Cols: 3, Buttons: []types.Button{}},
				},
			},
			{
				Name:   "Profile2",
				Hotkey: "Ctrl+2",
				Pages: []types.Page{
					{Name: "MainPage", Rows: 4, Cols: 5, Buttons: []types.Button{}},
				},
			},
		},
	}
}

// Button builds a minimal valid button for grid fixtures.
func Button(row, col int, label string) types.Button {
	return types.Button{
		Position:   types.Position{Row: row, Col: col},
		ActionType: types.ActionOpen,
		Label:      label,
		Config:     map[string]interface{}{"target": "/tmp/" + label},
	}
}

// FailFS wraps a types.FS and fails writes and renames on demand, for
// testing that mutations abort cleanly when persistence fails.
type FailFS struct {
	types.FS
	FailWrite  bool
	FailRename bool
	Err        error
}

func (f *FailFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.FailWrite {
		return f.failure()
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FailFS) Rename(oldpath, newpath string) error {
	if f.FailRename {
		return f.failure()
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FailFS) failure() error {
	if f.Err != nil {
		return f.Err
	}
	return fs.ErrPermission
}
