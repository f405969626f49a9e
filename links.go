package wikigenre

import (
	"regexp"
	"strings"
)

var (
	linkRE      = regexp.MustCompile(`\[\[([^\[\]|]+?)(?:\|[^\[\]]+)?\]\]`)
	pipedLinkRE = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`)
)

// ResolveLinks replaces each [[Target]] with Target and each
// [[Target|Display]] with Display.
func ResolveLinks(text string) string {
	return pipedLinkRE.ReplaceAllString(text, "$1")
}

// FindLinks finds all the link targets from within an article body.
//
// Section anchors are dropped ("Page#History" gives "Page"), and links
// inside comments and <nowiki> are ignored.
func FindLinks(text string) []string {
	cleaned := nowikiRE.ReplaceAllString(StripComments(text), "")
	matches := linkRE.FindAllStringSubmatch(cleaned, -1)

	rv := make([]string, 0, len(matches))
	for _, x := range matches {
		target, _, _ := strings.Cut(x[1], "#")
		target = strings.TrimSpace(target)
		if target != "" {
			rv = append(rv, target)
		}
	}

	return rv
}
