package wikigenre

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// A Record maps artist keys to their genres, remembering the order
// artists were added.  An artist with no genres is never in the record.
type Record struct {
	keys   []string
	genres map[string][]string
}

// NewRecord makes an empty record.
func NewRecord() *Record {
	return &Record{genres: map[string][]string{}}
}

// Set records an artist's genres.  Setting a key again replaces the
// genres but keeps the original position.  Empty genre lists are
// ignored.
func (r *Record) Set(key string, genres []string) {
	if len(genres) == 0 {
		return
	}
	if _, ok := r.genres[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.genres[key] = append([]string(nil), genres...)
}

// Get returns an artist's genres.
func (r *Record) Get(key string) ([]string, bool) {
	g, ok := r.genres[key]
	return g, ok
}

// Keys returns the artists in insertion order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len is the number of artists.
func (r *Record) Len() int {
	return len(r.keys)
}

// Each calls fn for every artist in order.
func (r *Record) Each(fn func(key string, genres []string)) {
	for _, k := range r.keys {
		fn(k, r.genres[k])
	}
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON writes the record as an object with keys in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		vb, err := marshalNoEscape(r.genres[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string lists, keeping key order.
func (r *Record) UnmarshalJSON(b []byte) error {
	*r = *NewRecord()
	d := json.NewDecoder(bytes.NewReader(b))
	if err := expectDelim(d, '{'); err != nil {
		return err
	}
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected artist key, got %v", tok)
		}
		var genres []string
		if err := d.Decode(&genres); err != nil {
			return fmt.Errorf("genres for %q: %w", key, err)
		}
		r.Set(key, genres)
	}
	return expectDelim(d, '}')
}

func expectDelim(d *json.Decoder, want json.Delim) error {
	tok, err := d.Token()
	if err != nil {
		return err
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

// MarshalYAML writes the record as a mapping with keys in order.
func (r *Record) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, g := range r.genres[k] {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: g})
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, seq)
	}
	return m, nil
}

// WriteJSON writes the record as indented JSON.
func (r *Record) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the record as YAML.
func (r *Record) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// ReadRecord reads a record written by WriteJSON.
func ReadRecord(rd io.Reader) (*Record, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	r := NewRecord()
	if err := r.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadRecord reads a record from a JSON file.
func LoadRecord(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecord(f)
}
