package wikigenre

// DefaultSkipTerms are labels that show up in genre fields but are
// citation leftovers or too generic to be a genre.
var DefaultSkipTerms = []string{
	"music", "band", "group", "cite web", "cite book",
	"first", "last", "url", "title", "ref", "name", "am",
	"allmusic", "www", "com", "http", "https", "ref name",
	"work", "date", "publisher", "website", "access-date",
	"archive-date", "archive-url", "page", "isbn", "year",
	"citation", "url-status", "live",
}

// BareRockTerms are skipped when Policy.DropBareRock is set.  The
// collection this was built for is all rock artists, so "rock" by
// itself says nothing.
var BareRockTerms = []string{"rock music", "rock"}

// DefaultRockVariants spell "rock and roll" the long way round.
var DefaultRockVariants = []string{
	"rock 'n' roll",
	"rock n roll",
	"rock'n'roll",
	"rock & roll",
	"rock n' roll",
}

// A Policy is the tunable part of genre extraction.
type Policy struct {
	// FieldNames are the infobox keys to read genres from.
	FieldNames []string
	// SkipTerms are discarded after normalization.
	SkipTerms []string
	// DropBareRock adds BareRockTerms to SkipTerms.
	DropBareRock bool
	// Synonyms maps spelling variants onto a canonical label.  Keys are
	// cleaned the same way labels are, so "rock 'n' roll" works as a key.
	Synonyms map[string]string
	// KeepEraParentheticals and EraQualifiers are passed to ParseField.
	KeepEraParentheticals bool
	EraQualifiers         []string
}

// DefaultPolicy is the behaviour the genre dataset was built with.
func DefaultPolicy() Policy {
	syn := make(map[string]string, len(DefaultRockVariants))
	for _, v := range DefaultRockVariants {
		syn[v] = "rock and roll"
	}
	return Policy{
		FieldNames:            append([]string(nil), DefaultFieldNames...),
		SkipTerms:             append([]string(nil), DefaultSkipTerms...),
		DropBareRock:          true,
		Synonyms:              syn,
		KeepEraParentheticals: true,
		EraQualifiers:         append([]string(nil), DefaultEraQualifiers...),
	}
}

// ParseOptions derives the field parser options from the policy.
func (p Policy) ParseOptions() ParseOptions {
	return ParseOptions{
		KeepEraParentheticals: p.KeepEraParentheticals,
		EraQualifiers:         p.EraQualifiers,
	}
}
