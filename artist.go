package wikigenre

import (
	"path/filepath"
	"regexp"
	"strings"
)

var trailingParenRE = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// TitleKey turns an article title into an artist key: underscores
// become spaces and a trailing disambiguator like "(band)" goes away.
func TitleKey(title string) string {
	name := strings.ReplaceAll(title, "_", " ")
	name = trailingParenRE.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// ArtistKey derives the artist key from a page's file name, e.g.
// "Yes_(band).txt" gives "Yes".
func ArtistKey(filename string) string {
	base := filepath.Base(filename)
	return TitleKey(strings.TrimSuffix(base, filepath.Ext(base)))
}
