package exchange

import (
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := tempStore(t)
	v, ok, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("want missing, got %q ok=%v", v, ok)
	}
}

func TestSetOverwriteRemove(t *testing.T) {
	s := tempStore(t)

	if err := s.Set("books", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("books", `[{"id":"1"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.Get("books")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"1"}]` {
		t.Fatalf("got %q", v)
	}

	if err := s.Remove("books"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get("books"); ok {
		t.Fatalf("key still present after remove")
	}
	// Removing again is fine.
	if err := s.Remove("books"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("session", `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get("session")
	if err != nil || !ok || v != `{"id":"u1"}` {
		t.Fatalf("after reopen got %q ok=%v err=%v", v, ok, err)
	}
}

func TestKeys(t *testing.T) {
	s := tempStore(t)
	for _, k := range []string{"users", "books", "favorites"} {
		if err := s.Set(k, "{}"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"books", "favorites", "users"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
