// Load artist genres into CouchDB
package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	wikigenre "github.com/dustin/go-wikigenre"
)

var numWorkers = flag.Int("numWorkers", 8, "Number of artist workers")

var log *zap.SugaredLogger

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] http://localhost:5984/genres artist_genres.json\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type ArtistDoc struct {
	ID     string   `json:"_id"`
	Rev    string   `json:"_rev,omitempty"`
	Type   string   `json:"type"`
	Artist string   `json:"artist"`
	Genres []string `json:"genres"`
}

func escapeID(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

func resolveConflict(db *couch.Database, a *ArtistDoc) {
	log.Debugf("Resolving conflict on %s", a.ID)
	var prev ArtistDoc
	err := db.Retrieve(escapeID(a.ID), &prev)
	if err != nil {
		log.Warnf("  Error retrieving existing %v: %v", a.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Warnf("Got no rev from %v", a.ID)
		return
	}
	if !reflect.DeepEqual(prev.Genres, a.Genres) {
		log.Infof("  Genres changed for %s, replacing %s.", a.Artist, prev.Rev)
		_, err = db.EditWith(a, a.ID, prev.Rev)
		if err != nil {
			log.Warnf("  Error updating %v: %v", prev.ID, err)
		}
	}
}

func doArtist(db *couch.Database, a *ArtistDoc) {
	_, _, err := db.Insert(a)
	httpe, isHttpError := err.(*couch.HTTPError)
	switch {
	case err == nil:
		// yay
	case isHttpError && httpe.Status == 409:
		resolveConflict(db, a)
	default:
		log.Warnf("Error inserting %#v: %v", a, err)
	}
}

func artistHandler(db couch.Database, ch <-chan *ArtistDoc) {
	defer wg.Done()
	for a := range ch {
		doArtist(&db, a)
	}
}

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		usage()
	}
	log = zap.Must(zap.NewDevelopment()).Sugar()
	defer log.Sync()

	dburl, file := flag.Arg(0), flag.Arg(1)

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	rec, err := wikigenre.LoadRecord(file)
	if err != nil {
		log.Fatalf("Error reading genres: %v", err)
	}
	log.Infof("Loading %s artists", humanize.Comma(int64(rec.Len())))

	ch := make(chan *ArtistDoc, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go artistHandler(db, ch)
	}

	artists := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	rec.Each(func(key string, genres []string) {
		ch <- &ArtistDoc{ID: key, Type: "artist", Artist: key, Genres: genres}

		artists++
		if artists%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Infof("Processed %s artists total (%.2f/s)",
				humanize.Comma(artists), float64(reportfreq)/d.Seconds())
			prev = now
		}
	})
	close(ch)
	wg.Wait()
	log.Infof("Loaded %s artists in %v",
		humanize.Comma(artists), time.Since(start))
}
