package wikigenre

import (
	"regexp"
)

var (
	commentRE = regexp.MustCompile(`(?s)<!--.*?-->`)
	nowikiRE  = regexp.MustCompile(`(?is)<nowiki>.*?</nowiki>`)
	refPairRE = regexp.MustCompile(`(?is)<ref(?:\s[^>]*[^/>])?>.*?</ref>`)
	refSelfRE = regexp.MustCompile(`(?i)<ref[^>]*/>`)
	refOpenRE = regexp.MustCompile(`(?i)<ref[^>]*>`)
	urlRE     = regexp.MustCompile(`https?://\S+`)
	wwwRE     = regexp.MustCompile(`www\.\S+`)
)

// A transform is one pass of the sanitizer pipeline.
type transform func(string) string

func remove(re *regexp.Regexp) transform {
	return func(s string) string {
		return re.ReplaceAllString(s, "")
	}
}

// Passes run in order.  Comments go first so a commented-out <ref> can't
// pair with a live </ref>.
var (
	commentPasses = []transform{remove(commentRE)}
	refPasses     = []transform{remove(refPairRE), remove(refSelfRE), remove(refOpenRE)}
	urlPasses     = []transform{remove(urlRE), remove(wwwRE)}

	structuralPasses = concat(commentPasses, refPasses)
	sanitizePasses   = concat(commentPasses, refPasses, urlPasses)
)

func concat(groups ...[]transform) []transform {
	var rv []transform
	for _, g := range groups {
		rv = append(rv, g...)
	}
	return rv
}

// run applies passes until the text stops changing.  Every pass only
// deletes, so this terminates, and it guarantees that splicing text
// back together can't leave a fresh match behind (e.g. "<re<ref/>f/>").
func run(passes []transform, s string) string {
	for {
		prev := s
		for _, p := range passes {
			s = p(s)
		}
		if s == prev {
			return s
		}
	}
}

// Sanitize removes HTML comments, <ref> markup (paired, self-closing
// and stray opening tags) and absolute URLs from text.
//
// Anything that doesn't match is left alone, and running it twice
// gives the same answer as running it once.
func Sanitize(text string) string {
	return run(sanitizePasses, text)
}

// StripMarkup removes comments and <ref> markup but leaves URLs in
// place.  This is what runs before brace counting: a bare URL often
// abuts the }} that closes its template, and eating that would
// unbalance everything after it.
func StripMarkup(text string) string {
	return run(structuralPasses, text)
}

// StripComments removes <!-- --> comments only.
func StripComments(text string) string {
	return run(commentPasses, text)
}

// StripRefs removes <ref> markup only.
func StripRefs(text string) string {
	return run(refPasses, text)
}
