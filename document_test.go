package wikigenre

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		exp  string
	}{
		{"plain", []byte("Punk rock"), "Punk rock"},
		{"utf-8 bom", []byte("\xef\xbb\xbfSigur Rós"), "Sigur Rós"},
		{"utf-16le bom", []byte{0xff, 0xfe, 'h', 0, 'i', 0}, "hi"},
		{"invalid bytes", []byte("a\xffb"), "ab"},
	}
	for _, test := range tests {
		if got := Decode(test.in); got != test.exp {
			t.Errorf("%v: expected %q, got %q", test.name, test.exp, got)
		}
	}
}

func writePages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("text of "+n), 0o644); err != nil {
			t.Fatalf("Error writing %v: %v", n, err)
		}
	}
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "b.txt", "A.TXT", "c.md")
	if err := os.Mkdir(filepath.Join(dir, "d.txt"), 0o755); err != nil {
		t.Fatalf("Error making subdir: %v", err)
	}

	got, err := ListDocuments(dir, ".txt")
	if err != nil {
		t.Fatalf("Error listing: %v", err)
	}
	exp := []string{filepath.Join(dir, "A.TXT"), filepath.Join(dir, "b.txt")}
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("Expected %#v, got %#v", exp, got)
	}
}

func TestListDocumentsMissingDir(t *testing.T) {
	_, err := ListDocuments(filepath.Join(t.TempDir(), "nope"), "")
	if !errors.Is(err, ErrNoDirectory) {
		t.Fatalf("Expected ErrNoDirectory, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "The_Clash.txt")
	missing := filepath.Join(dir, "Yes_(band).txt")
	src := NewFileSource([]string{missing, filepath.Join(dir, "The_Clash.txt")})

	d, err := src.Next()
	var rerr *ReadError
	if !errors.As(err, &rerr) {
		t.Fatalf("Expected a ReadError, got %v", err)
	}
	if rerr.Path != missing || d.Key != "Yes" {
		t.Fatalf("Unexpected failed document %#v (%v)", d, rerr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected the cause to be kept, got %v", err)
	}

	d, err = src.Next()
	if err != nil {
		t.Fatalf("Error reading: %v", err)
	}
	exp := Document{
		Key:  "The Clash",
		Name: "The_Clash",
		Path: filepath.Join(dir, "The_Clash.txt"),
		Text: "text of The_Clash.txt",
	}
	if !reflect.DeepEqual(exp, d) {
		t.Fatalf("Expected %#v, got %#v", exp, d)
	}

	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("Expected EOF, got %v", err)
	}
}

func TestWords(t *testing.T) {
	d := Document{Text: " one two\tthree\nfour "}
	if d.Words() != 4 {
		t.Fatalf("Expected 4 words, got %v", d.Words())
	}
}
