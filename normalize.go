package wikigenre

import (
	"strings"
)

var (
	bracketStripper = strings.NewReplacer("[", "", "]", "")
	braceStripper   = strings.NewReplacer("{", "", "}", "", `"`, "", "'", "", "`", "")
)

// A Normalizer turns raw labels into canonical genres.
type Normalizer struct {
	skip     map[string]bool
	synonyms map[string]string
}

// NewNormalizer builds a normalizer for the given policy.
func NewNormalizer(p Policy) *Normalizer {
	n := &Normalizer{
		skip:     map[string]bool{},
		synonyms: map[string]string{},
	}
	terms := p.SkipTerms
	if p.DropBareRock {
		terms = append(append([]string(nil), terms...), BareRockTerms...)
	}
	for _, t := range terms {
		n.skip[clean(t)] = true
	}
	for k, v := range p.Synonyms {
		n.synonyms[clean(k)] = clean(v)
	}
	return n
}

// clean is everything Normalize does short of synonyms and filtering.
// It repeats until nothing changes, since stripping a brace can
// complete a tag the sanitizer would have removed.
func clean(s string) string {
	for {
		prev := s
		s = strings.ReplaceAll(s, "*", "")
		s = strings.ToLower(strings.TrimSpace(s))
		s = ResolveLinks(s)
		s = bracketStripper.Replace(s)
		s = Sanitize(s)
		s = braceStripper.Replace(s)
		s = strings.Join(strings.Fields(s), " ")
		if s == prev {
			return s
		}
	}
}

func (n *Normalizer) synonym(s string) string {
	for i := 0; i <= len(n.synonyms); i++ {
		syn, ok := n.synonyms[s]
		if !ok || syn == s {
			break
		}
		s = syn
	}
	return s
}

// Normalize canonicalizes one raw label.  The bool is false when the
// label should be dropped.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	s := n.synonym(clean(raw))

	switch {
	case len(s) <= 1,
		n.skip[s],
		strings.Contains(s, "ref"),
		strings.Contains(s, "cite"),
		strings.Contains(s, "."):
		return "", false
	}
	return s, true
}

// Collect normalizes raws in order, dropping discards and repeats.
func (n *Normalizer) Collect(raws []string) []string {
	var rv []string
	seen := map[string]bool{}
	for _, raw := range raws {
		g, ok := n.Normalize(raw)
		if !ok || seen[g] {
			continue
		}
		seen[g] = true
		rv = append(rv, g)
	}
	return rv
}
