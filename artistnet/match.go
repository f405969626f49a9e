package artistnet

import (
	"bufio"
	"io"
	"os"
	"strings"

	wikigenre "github.com/dustin/go-wikigenre"
)

// A Matcher maps page names and link targets onto known artists.
type Matcher struct {
	artists  map[string]bool
	variants map[string]string
}

// NewMatcher builds a matcher for the given artist names.
func NewMatcher(artists []string) *Matcher {
	m := &Matcher{
		artists:  make(map[string]bool, len(artists)),
		variants: make(map[string]string, 4*len(artists)),
	}
	for _, a := range artists {
		m.artists[a] = true
		m.variants[a] = a
		m.variants[strings.ReplaceAll(a, " ", "_")] = a
		// Saved page names had '/' replaced, and some lists carry a
		// mis-decoded en dash.
		sanitized := strings.NewReplacer("/", "_", "â€“", "-").Replace(a)
		m.variants[sanitized] = a
		m.variants[strings.ReplaceAll(sanitized, " ", "_")] = a
	}
	return m
}

// Page maps a saved page name to its artist.
func (m *Matcher) Page(name string) (string, bool) {
	if a, ok := m.variants[name]; ok {
		return a, true
	}
	a, ok := m.variants[strings.ReplaceAll(name, "_", " ")]
	return a, ok
}

// Title reports whether a dump page title names a known artist, with
// or without a disambiguator.
func (m *Matcher) Title(title string) bool {
	if _, ok := m.Page(title); ok {
		return true
	}
	_, ok := m.Page(wikigenre.TitleKey(title))
	return ok
}

// Link maps a link target to an artist, allowing underscores for
// spaces.
func (m *Matcher) Link(target string) (string, bool) {
	if m.artists[target] {
		return target, true
	}
	t := strings.ReplaceAll(target, "_", " ")
	if m.artists[t] {
		return t, true
	}
	return "", false
}

// LoadArtistList reads one artist per line, skipping blank lines.
func LoadArtistList(r io.Reader) ([]string, error) {
	var rv []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			rv = append(rv, line)
		}
	}
	return rv, sc.Err()
}

// LoadMatcher builds a matcher from an artist list file.
func LoadMatcher(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	artists, err := LoadArtistList(f)
	if err != nil {
		return nil, err
	}
	return NewMatcher(artists), nil
}
