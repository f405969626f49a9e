package wikigenre

import (
	"strings"
)

// A Span is a half-open [Start, End) byte range of some text.
type Span struct {
	Start int
	End   int
}

// Text returns the part of s covered by the span.
func (sp Span) Text(s string) string {
	return s[sp.Start:sp.End]
}

// Len is the byte length of the span.
func (sp Span) Len() int {
	return sp.End - sp.Start
}

type matchState int

const (
	scanning matchState = iota
	capturing
	terminated
)

// MatchSpan finds the first occurrence of open in text and returns the
// span running through the close that brings the nesting depth back to
// zero.
//
// Unbalanced input doesn't fail: if the depth never returns to zero
// the span runs to the end of text.  The bool is false only when open
// never occurs.
func MatchSpan(text, open, close string) (Span, bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return Span{}, false
	}
	return MatchSpanFrom(text, start, open, close), true
}

// MatchSpanFrom is MatchSpan anchored at a known offset.  The scan
// starts at from whether or not open occurs there; if text at from
// isn't open the first occurrence after it starts the capture.
func MatchSpanFrom(text string, from int, open, close string) Span {
	if from > len(text) {
		from = len(text)
	}
	if open == "" || close == "" || from == len(text) {
		return Span{Start: from, End: len(text)}
	}

	state := scanning
	sp := Span{Start: from, End: len(text)}
	depth := 0
	for i := from; i < len(text) && state != terminated; {
		switch {
		case strings.HasPrefix(text[i:], open):
			if state == scanning {
				state = capturing
				sp.Start = i
			}
			depth++
			i += len(open)
		case state == capturing && strings.HasPrefix(text[i:], close):
			depth--
			i += len(close)
			if depth == 0 {
				sp.End = i
				state = terminated
			}
		default:
			i++
		}
	}
	return sp
}

// MatchBraces matches single { and } characters from the given offset.
func MatchBraces(text string, from int) Span {
	return MatchSpanFrom(text, from, "{", "}")
}

// braceDelta is the net {/} count of a line.
func braceDelta(s string) int {
	return strings.Count(s, "{") - strings.Count(s, "}")
}
