package wikigenre

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ListTemplates are the template names whose arguments are list items.
var ListTemplates = []string{"flatlist", "hlist", "flat list", "unbulleted list", "plainlist"}

// DefaultEraQualifiers keep a parenthetical attached to a list item,
// e.g. "pop rock (early)".
var DefaultEraQualifiers = []string{"early", "later", "late", "mid"}

var (
	listTemplateRE  = regexp.MustCompile(`(?i)\{\{\s*(?:` + strings.Join(ListTemplates, "|") + `)\b`)
	templateHeadRE  = regexp.MustCompile(`^\{\{[^|{}\n]*\|?`)
	templateTailRE  = regexp.MustCompile(`\}\}$`)
	nowrapRE        = regexp.MustCompile(`(?i)\{\{\s*nowrap\s*\|([^}]+)\}\}`)
	breakRE         = regexp.MustCompile(`(?i)<br\s*/?>`)
	parentheticalRE = regexp.MustCompile(`\([^)]*\)`)
)

// ParseOptions control the lossy parts of field parsing.
type ParseOptions struct {
	// KeepEraParentheticals keeps "(early)", "(mid-1980s)" and the like
	// on list items.  When false every parenthetical is dropped.
	KeepEraParentheticals bool
	// EraQualifiers are the words that make a parenthetical worth keeping.
	EraQualifiers []string

	// Dropped, if set, is told about every parenthetical removed.
	Dropped func(item, parenthetical string)
}

// DefaultParseOptions keeps era parentheticals.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		KeepEraParentheticals: true,
		EraQualifiers:         DefaultEraQualifiers,
	}
}

func (o ParseOptions) eraRE() *regexp.Regexp {
	if !o.KeepEraParentheticals || len(o.EraQualifiers) == 0 {
		return nil
	}
	words := make([]string, 0, len(o.EraQualifiers))
	for _, w := range o.EraQualifiers {
		words = append(words, regexp.QuoteMeta(w))
	}
	return regexp.MustCompile(`(?i)\(.*\b(?:` + strings.Join(words, "|") + `)\b.*\)`)
}

// ParseField pulls raw genre labels out of the text of a genre field.
//
// List templates ({{flatlist}}, {{hlist}}, ...) win when present.
// Anything else is treated as delimited text, possibly wrapped in a
// single template.  Labels come back in source order and may repeat.
func ParseField(text string, opts ParseOptions) []string {
	return parseField(text, opts, opts.eraRE())
}

// parseField is ParseField with the era pattern already compiled.
func parseField(text string, opts ParseOptions, era *regexp.Regexp) []string {
	text = StripMarkup(text)

	if loc := listTemplateRE.FindStringIndex(text); loc != nil {
		return parseList(text, loc[0], opts, era)
	}
	return parsePlain(text)
}

func parseList(text string, start int, opts ParseOptions, era *regexp.Regexp) []string {
	body := MatchBraces(text, start).Text(text)
	body = templateHeadRE.ReplaceAllString(body, "")
	body = templateTailRE.ReplaceAllString(strings.TrimSpace(body), "")

	var items []string
	if strings.Contains(body, "*") {
		items = strings.FieldsFunc(body, func(r rune) bool { return r == '*' })
	} else {
		items = splitTopLevel(body, func(r rune) bool { return r == '|' })
	}

	var rv []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		item = ResolveLinks(item)
		item = unwrapNowrap(item)
		if strings.Contains(item, "(") && (era == nil || !era.MatchString(item)) {
			item = parentheticalRE.ReplaceAllStringFunc(item, func(p string) string {
				if opts.Dropped != nil {
					opts.Dropped(item, p)
				}
				return ""
			})
		}
		item = strings.TrimSpace(item)
		if item == "" || strings.HasPrefix(item, "<!--") {
			continue
		}
		rv = append(rv, item)
	}
	return rv
}

func isPlainSep(r rune) bool {
	switch r {
	case ',', ';', '/', '\n', '•', '·', '|':
		return true
	}
	return false
}

func parsePlain(text string) []string {
	text = unwrapNowrap(strings.TrimSpace(text))
	// Only unwrap a template that spans the whole value.
	if strings.HasPrefix(text, "{{") && MatchSpanFrom(text, 0, "{{", "}}").End == len(text) {
		text = templateHeadRE.ReplaceAllString(text, "")
		text = templateTailRE.ReplaceAllString(text, "")
	}
	text = breakRE.ReplaceAllString(text, ",")

	var rv []string
	for _, piece := range splitTopLevel(text, isPlainSep) {
		piece = strings.TrimSpace(piece)
		if strings.Contains(piece, "[[") {
			piece = ResolveLinks(piece)
		}
		if piece == "" ||
			strings.HasPrefix(piece, "{{") ||
			strings.HasPrefix(piece, "<!--") ||
			strings.HasPrefix(piece, "<ref") {
			continue
		}
		rv = append(rv, piece)
	}
	return rv
}

func unwrapNowrap(s string) string {
	return nowrapRE.ReplaceAllString(s, "$1")
}

// splitTopLevel splits s at separator runes that aren't inside [[ ]]
// or {{ }}, so "[[Rock music|Rock]]|Pop" is two items rather than three.
func splitTopLevel(s string, sep func(rune) bool) []string {
	var rv []string
	depth := 0
	last := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "[[") || strings.HasPrefix(s[i:], "{{"):
			depth++
			i += 2
		case depth > 0 && (strings.HasPrefix(s[i:], "]]") || strings.HasPrefix(s[i:], "}}")):
			depth--
			i += 2
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			if depth == 0 && sep(r) {
				rv = append(rv, s[last:i])
				last = i + size
			}
			i += size
		}
	}
	return append(rv, s[last:])
}
