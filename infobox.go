package wikigenre

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNoInfobox is returned when a document has no {{Infobox ...}}.
	ErrNoInfobox = errors.New("no infobox found")
	// ErrNoField is returned when the infobox has none of the requested fields.
	ErrNoField = errors.New("no such infobox field")
)

var infoboxRE = regexp.MustCompile(`(?i)\{\{\s*Infobox`)

// DefaultFieldNames are the infobox keys holding an artist's genres.
var DefaultFieldNames = []string{"genre", "genres"}

// A FieldBlock is the raw text of one infobox field.
type FieldBlock struct {
	// Name is the field name as written in the document.
	Name string
	// Lines holds the value, starting with whatever followed the '='.
	Lines []string
	// Depth is the unclosed brace count at the end of the field.
	Depth int
}

// Text joins the field's lines back together.
func (f FieldBlock) Text() string {
	return strings.Join(f.Lines, "\n")
}

// FindInfobox locates the first infobox template in doc.
func FindInfobox(doc string) (Span, error) {
	loc := infoboxRE.FindStringIndex(doc)
	if loc == nil {
		return Span{}, ErrNoInfobox
	}
	return MatchBraces(doc, loc[0]), nil
}

func fieldRE(names []string) *regexp.Regexp {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(n)))
	}
	return regexp.MustCompile(`(?i)^\s*\|\s*(` + strings.Join(quoted, "|") + `)\s*=\s*`)
}

// LocateField isolates one named field of the document's infobox.
//
// Comments and <ref> markup are stripped first so that braces inside
// them can't throw off the depth count.  Capture starts on the first
// line of the form "| name =" for any of names, and stops before the
// first later line that begins with '|' while every brace opened
// inside the field has been closed.
func LocateField(doc string, names []string) (FieldBlock, error) {
	if len(names) == 0 {
		names = DefaultFieldNames
	}
	return locateField(doc, fieldRE(names))
}

func locateField(doc string, re *regexp.Regexp) (FieldBlock, error) {
	doc = StripMarkup(doc)

	sp, err := FindInfobox(doc)
	if err != nil {
		return FieldBlock{}, err
	}

	state := scanning
	var fb FieldBlock
lines:
	for _, line := range strings.Split(sp.Text(doc), "\n") {
		switch state {
		case scanning:
			m := re.FindStringSubmatchIndex(line)
			if m == nil {
				continue
			}
			value := line[m[1]:]
			fb.Name = line[m[2]:m[3]]
			fb.Lines = append(fb.Lines, value)
			fb.Depth = braceDelta(value)
			state = capturing
		case capturing:
			if fb.Depth == 0 && strings.HasPrefix(strings.TrimSpace(line), "|") {
				state = terminated
				break lines
			}
			fb.Lines = append(fb.Lines, line)
			fb.Depth += braceDelta(line)
		}
	}

	if len(fb.Lines) == 0 {
		return FieldBlock{}, ErrNoField
	}
	return fb, nil
}
