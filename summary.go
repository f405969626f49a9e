package wikigenre

import (
	"sort"
)

// A GenreCount is how many artists carry a genre.
type GenreCount struct {
	Genre   string `json:"genre"`
	Artists int    `json:"artists"`
}

// Summary describes a finished batch.
type Summary struct {
	Processed     int `json:"processed"`
	WithGenres    int `json:"with_genres"`
	WithoutGenres int `json:"without_genres"`
	// Failed counts documents that couldn't be read or ran out of
	// time.  They're included in WithoutGenres.
	Failed         int          `json:"failed"`
	DistinctGenres int          `json:"distinct_genres"`
	Top            []GenreCount `json:"top"`
}

// GenreCounts tallies artists per genre.  Genres are ordered by count,
// ties going to whichever genre the record mentions first.
func GenreCounts(r *Record) []GenreCount {
	idx := map[string]int{}
	var rv []GenreCount
	r.Each(func(_ string, genres []string) {
		for _, g := range genres {
			i, ok := idx[g]
			if !ok {
				i = len(rv)
				idx[g] = i
				rv = append(rv, GenreCount{Genre: g})
			}
			rv[i].Artists++
		}
	})
	sort.SliceStable(rv, func(i, j int) bool {
		return rv[i].Artists > rv[j].Artists
	})
	return rv
}

// Counts are per-document tallies from a batch.
type Counts struct {
	Processed int
	Found     int
	Failed    int
}

// Summarize builds a batch summary.  Top holds at most top genres.
func Summarize(r *Record, c Counts, top int) Summary {
	counts := GenreCounts(r)
	s := Summary{
		Processed:      c.Processed,
		WithGenres:     c.Found,
		WithoutGenres:  c.Processed - c.Found,
		Failed:         c.Failed,
		DistinctGenres: len(counts),
	}
	if top > len(counts) {
		top = len(counts)
	}
	if top > 0 {
		s.Top = counts[:top]
	}
	return s
}
