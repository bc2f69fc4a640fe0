package statestore

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "texelpad.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)
	blob := []byte{0x01, 0x02, 0x00, 0xff}
	if err := s.Save("session", blob); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load("session")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("got %x, want %x", got, blob)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := openTemp(t)
	if err := s.Save("session", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("session", []byte("new")); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load("session")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("got %q, want new", got)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Load("nothing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingIsNoError(t *testing.T) {
	s := openTemp(t)
	if err := s.Delete("nothing"); err != nil {
		t.Fatal(err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "texelpad.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("session", []byte("survives")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Load("session")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "survives" {
		t.Fatalf("got %q after reopen", got)
	}
}
