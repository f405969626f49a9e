// Load artist genres into CouchBase
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
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
		"Usage:\n  %s [opts] artist_genres.json\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type Artist struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type item struct {
	key    string
	genres []string
}

func doArtist(db *couchbase.Bucket, it item) {
	a := Artist{Type: "artist", Name: it.key, Genres: it.genres}
	err := db.Set("artist::"+it.key, 0, a)
	if err != nil {
		log.Warnf("Error setting %v: %v", it.key, err)
		return
	}
	// One document per genre listing its artists lets the genre
	// side be fetched without a view.
	for _, g := range it.genres {
		k := "genre::" + g
		err := db.Update(k, 0, func(current []byte) ([]byte, error) {
			return addArtist(current, it.key)
		})
		if err != nil {
			log.Warnf("Error updating %v: %v", k, err)
		}
	}
}

func artistHandler(db *couchbase.Bucket, ch <-chan item) {
	defer wg.Done()
	for it := range ch {
		doArtist(db, it)
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	log = zap.Must(zap.NewDevelopment()).Sugar()
	defer log.Sync()

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}
	defer db.Close()

	rec, err := wikigenre.LoadRecord(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading genres: %v", err)
	}

	ch := make(chan item, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go artistHandler(db, ch)
	}

	artists := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	rec.Each(func(key string, genres []string) {
		ch <- item{key, genres}

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
