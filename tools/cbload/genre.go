package main

import (
	"encoding/json"
)

// A GenreDoc lists the artists carrying one genre.
type GenreDoc struct {
	Type    string   `json:"type"`
	Artists []string `json:"artists"`
}

// addArtist adds an artist to a stored genre document.  current is nil
// when the document doesn't exist yet.
func addArtist(current []byte, artist string) ([]byte, error) {
	doc := GenreDoc{Type: "genre"}
	if current != nil {
		if err := json.Unmarshal(current, &doc); err != nil {
			return nil, err
		}
	}
	for _, a := range doc.Artists {
		if a == artist {
			return current, nil
		}
	}
	doc.Artists = append(doc.Artists, artist)
	return json.Marshal(doc)
}
