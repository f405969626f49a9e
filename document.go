package wikigenre

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	textxform "golang.org/x/text/transform"
)

// DefaultExtension is the file extension of saved wiki pages.
const DefaultExtension = ".txt"

// ErrNoDirectory is returned when the input directory doesn't exist.
var ErrNoDirectory = errors.New("input directory does not exist")

// A Document is the wikitext of one artist's page.
type Document struct {
	// Key identifies the artist (see ArtistKey).
	Key string
	// Name is the page name as stored: the file name without its
	// extension, or the dump title.
	Name string
	// Path is where the document came from, if it was a file.
	Path string
	Text string
}

// Words counts whitespace-separated words in the document.
func (d Document) Words() int {
	return len(strings.Fields(d.Text))
}

// A ReadError is a failure to read one document.  It never stops a
// batch.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %v: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Decode turns raw page bytes into text.  A byte order mark selects
// UTF-8 or UTF-16; anything that then fails to decode is dropped
// rather than failing the document.
func Decode(b []byte) string {
	out, _, err := textxform.Bytes(unicode.BOMOverride(textxform.Nop), b)
	if err != nil {
		out = b
	}
	return strings.ToValidUTF8(string(out), "")
}

// ReadDocument loads one saved page.
func ReadDocument(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &ReadError{Path: path, Err: err}
	}
	base := filepath.Base(path)
	return Document{
		Key:  ArtistKey(base),
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
		Text: Decode(b),
	}, nil
}

// ListDocuments returns the files in dir with the given extension,
// sorted by name.  Subdirectories are not searched.
func ListDocuments(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNoDirectory, dir)
		}
		return nil, err
	}

	var rv []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		rv = append(rv, filepath.Join(dir, e.Name()))
	}
	sort.Strings(rv)
	return rv, nil
}

// A Source yields documents one at a time, returning io.EOF when it
// runs out.  A *ReadError means one document was lost and the next
// call may still succeed.
type Source interface {
	Next() (Document, error)
}

type fileSource struct {
	paths []string
	pos   int
}

// NewFileSource reads the given files in order.
func NewFileSource(paths []string) Source {
	return &fileSource{paths: paths}
}

// NewDirSource reads every page in dir with the given extension.
func NewDirSource(dir, ext string) (Source, int, error) {
	paths, err := ListDocuments(dir, ext)
	if err != nil {
		return nil, 0, err
	}
	return NewFileSource(paths), len(paths), nil
}

func (s *fileSource) Next() (Document, error) {
	if s.pos >= len(s.paths) {
		return Document{}, io.EOF
	}
	p := s.paths[s.pos]
	s.pos++
	d, err := ReadDocument(p)
	if err != nil {
		d.Path = p
		d.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		d.Key = ArtistKey(p)
	}
	return d, err
}

type sliceSource struct {
	docs []Document
	pos  int
}

// NewSliceSource yields docs in order.
func NewSliceSource(docs []Document) Source {
	return &sliceSource{docs: docs}
}

func (s *sliceSource) Next() (Document, error) {
	if s.pos >= len(s.docs) {
		return Document{}, io.EOF
	}
	s.pos++
	return s.docs[s.pos-1], nil
}
