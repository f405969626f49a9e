package wikigenre

import (
	"errors"
	"regexp"
)

// ErrNoGenres is returned when a genre field exists but every label in
// it was filtered out.
var ErrNoGenres = errors.New("no genres survived normalization")

// IsNotFound reports whether err means "this document has no genres"
// rather than something having gone wrong.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoInfobox) ||
		errors.Is(err, ErrNoField) ||
		errors.Is(err, ErrNoGenres)
}

// An Extractor pulls canonical genres out of article wikitext.
type Extractor struct {
	policy     Policy
	parse      ParseOptions
	normalizer *Normalizer

	field *regexp.Regexp
	era   *regexp.Regexp
}

// NewExtractor builds an extractor for the given policy.
func NewExtractor(p Policy) *Extractor {
	if len(p.FieldNames) == 0 {
		p.FieldNames = DefaultFieldNames
	}
	opts := p.ParseOptions()
	return &Extractor{
		policy:     p,
		parse:      opts,
		normalizer: NewNormalizer(p),
		field:      fieldRE(p.FieldNames),
		era:        opts.eraRE(),
	}
}

// Policy returns the policy the extractor was built with.
func (e *Extractor) Policy() Policy {
	return e.policy
}

// OnDroppedParenthetical installs a callback for parentheticals the
// field parser throws away.
func (e *Extractor) OnDroppedParenthetical(fn func(item, parenthetical string)) {
	e.parse.Dropped = fn
}

// Genres returns the canonical genres from the infobox of text, in
// the order they first appear.
//
// The error is ErrNoInfobox, ErrNoField or ErrNoGenres when there's
// nothing to report.
func (e *Extractor) Genres(text string) ([]string, error) {
	fb, err := locateField(text, e.field)
	if err != nil {
		return nil, err
	}
	genres := e.normalizer.Collect(parseField(fb.Text(), e.parse, e.era))
	if len(genres) == 0 {
		return nil, ErrNoGenres
	}
	return genres, nil
}
