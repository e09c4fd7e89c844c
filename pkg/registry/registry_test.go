package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/qdeck/qdeck/pkg/errors"
)

type testItem struct {
	ID   int
	Name string
}

func TestNew(t *testing.T) {
	reg := New[testItem]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Count() != 0 {
		t.Errorf("New registry should be empty, got count %d", reg.Count())
	}
}

func TestRegister(t *testing.T) {
	reg := New[testItem]()

	t.Run("register valid item", func(t *testing.T) {
		replaced, err := reg.Register("item1", testItem{ID: 1, Name: "first"})

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		if replaced {
			t.Error("Register() on a fresh name should not report replacement")
		}
		if reg.Count() != 1 {
			t.Errorf("Count() = %d, want 1", reg.Count())
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		_, err := reg.Register("", testItem{ID: 2})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("re-register overrides", func(t *testing.T) {
		replaced, err := reg.Register("item1", testItem{ID: 3, Name: "override"})

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		if !replaced {
			t.Error("Register() on an existing name should report replacement")
		}

		got, err := reg.Get("item1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != 3 || got.Name != "override" {
			t.Errorf("Get() = %+v, want the overriding item", got)
		}
		if reg.Count() != 1 {
			t.Errorf("Count() = %d, want 1 after override", reg.Count())
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[testItem]()
	item := testItem{ID: 1, Name: "test"}
	_, _ = reg.Register("item1", item)

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("item1")

		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}

		if got != item {
			t.Errorf("Get() = %+v, want %+v", got, item)
		}
	})

	t.Run("get non-existing item", func(t *testing.T) {
		_, err := reg.Get("nonexistent")

		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get() non-existing should return ErrNotFound, got %v", err)
		}
	})
}

func TestRemove(t *testing.T) {
	reg := New[testItem]()
	_, _ = reg.Register("item1", testItem{ID: 1})

	t.Run("remove existing item", func(t *testing.T) {
		if err := reg.Remove("item1"); err != nil {
			t.Fatalf("Remove() error = %v, want nil", err)
		}

		if reg.Has("item1") {
			t.Error("Item should not exist after removal")
		}
	})

	t.Run("remove non-existing item", func(t *testing.T) {
		err := reg.Remove("nonexistent")

		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Remove() non-existing should return ErrNotFound, got %v", err)
		}
	})
}

func TestList(t *testing.T) {
	reg := New[testItem]()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, _ = reg.Register(name, testItem{})
	}

	got := reg.List()
	want := []string{"alpha", "bravo", "charlie"}

	if len(got) != len(want) {
		t.Fatalf("List() returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q (sorted order)", i, got[i], want[i])
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[testItem]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, _ = reg.Register(fmt.Sprintf("item%d", n), testItem{ID: n})
		}(i)
		go func(n int) {
			defer wg.Done()
			_, _ = reg.Get(fmt.Sprintf("item%d", n))
		}(i)
	}
	wg.Wait()

	if reg.Count() != 50 {
		t.Errorf("Count() = %d, want 50", reg.Count())
	}
}
