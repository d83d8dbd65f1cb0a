package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	type identity struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}

	in := identity{ID: "u1", Username: "akosua"}
	if err := s.Put(KeyAuthUser, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out identity
	if !s.Get(KeyAuthUser, &out) {
		t.Fatal("expected stored key to be found")
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestMissingKeyReadsAsAbsent(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var out map[string]any
	if s.Get("nope", &out) {
		t.Fatal("missing key must read as absent")
	}
}

func TestCorruptDocumentReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, KeyTheme+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	var theme string
	if s.Get(KeyTheme, &theme) {
		t.Fatal("corrupt document must read as absent")
	}
}

func TestDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Put(KeyTheme, "dark"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(KeyTheme); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var theme string
	if s.Get(KeyTheme, &theme) {
		t.Fatal("deleted key must read as absent")
	}
	if err := s.Delete(KeyTheme); err != nil {
		t.Fatalf("Delete of missing key must be a no-op, got %v", err)
	}
}
