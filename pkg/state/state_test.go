package state

import (
	"testing"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/filesystem"
	"github.com/qdeck/qdeck/pkg/testutil"
)

func TestLoadMissingReturnsZero(t *testing.T) {
	store := NewStore(filesystem.NewMemory(), "/state/state.yaml")
	p, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.ProfileIndex != 0 || p.PageIndex != 0 || p.LastActivePages != nil {
		t.Errorf("Load() = %+v, want zero pointer", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filesystem.NewMemory(), "/state/state.yaml")
	want := Pointer{
		ProfileIndex:    1,
		PageIndex:       2,
		LastActivePages: map[string]int{"Profile1": 1, "Profile2": 0},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ProfileIndex != 1 || got.PageIndex != 2 {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if got.LastActivePages["Profile1"] != 1 {
		t.Errorf("LastActivePages[Profile1] = %d, want 1", got.LastActivePages["Profile1"])
	}
}

func TestSaveFailurePreservesOldState(t *testing.T) {
	mem := filesystem.NewMemory()
	store := NewStore(mem, "/state/state.yaml")
	if err := store.Save(Pointer{ProfileIndex: 1}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	failing := NewStore(&testutil.FailFS{FS: mem, FailRename: true}, "/state/state.yaml")
	err := failing.Save(Pointer{ProfileIndex: 5})
	if !errors.IsErrorCode(err, errors.ErrStateSave) {
		t.Fatalf("Save() error = %v, want STATE_SAVE", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ProfileIndex != 1 {
		t.Errorf("ProfileIndex = %d, want 1 (old state)", got.ProfileIndex)
	}
}

func TestLoadMalformed(t *testing.T) {
	mem := filesystem.NewMemory()
	if err := mem.MkdirAll("/state", 0755); err != nil {
		t.Fatal(err)
	}
	if err := mem.WriteFile("/state/state.yaml", []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(mem, "/state/state.yaml")
	if _, err := store.Load(); !errors.IsErrorCode(err, errors.ErrStateLoad) {
		t.Errorf("Load() error = %v, want STATE_LOAD", err)
	}
}
