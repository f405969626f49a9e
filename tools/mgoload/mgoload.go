package main

import (
	"flag"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	wikigenre "github.com/dustin/go-wikigenre"
)

var proc = flag.Int("proc", runtime.NumCPU(), "How many workers to run.")
var file = flag.String("file", "artist_genres.json", "The genre file written by genrescan.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "artists", "The collection to store artists in.")
var dbname = flag.String("dbname", "music", "The database name to use.")

var log *zap.SugaredLogger

var wg sync.WaitGroup

// Artist names are unique, and genre lookups go through the multikey
// index.
var indexes = []mgo.Index{
	{
		Key:        []string{"name"},
		Unique:     true,
		DropDups:   true,
		Background: true,
	},
	{
		Key:        []string{"genres"},
		Background: true,
	},
}

type artist struct {
	Name   string   `bson:"name"`
	Genres []string `bson:"genres"`
	Loaded int64    `bson:"loaded"`
}

func artistHandler(db *mgo.Database, ch <-chan artist) {
	defer wg.Done()
	for a := range ch {
		upsertArtist(db, a)
	}
}

func upsertArtist(db *mgo.Database, a artist) {
	info, err := db.C(*collection).Upsert(bson.M{"name": a.Name}, &a)
	if err != nil {
		log.Warnf("Error upserting %s: %s", a.Name, err)
		return
	}
	if *verbose && info.Updated > 0 {
		log.Debugf("Replaced existing %s", a.Name)
	}
}

func load(rec *wikigenre.Record, db *mgo.Database) {
	ch := make(chan artist, 1000)
	for i := 0; i < *proc; i++ {
		wg.Add(1)
		go artistHandler(db, ch)
	}

	artists := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	rec.Each(func(key string, genres []string) {
		ch <- artist{Name: key, Genres: genres, Loaded: start.Unix()}
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

	d := time.Since(start)
	log.Infof("Loaded %s artists after %v (%.2f a/s)",
		humanize.Comma(artists), d, float64(artists)/d.Seconds())
}

func main() {
	flag.Parse()
	cfg := zap.NewDevelopmentConfig()
	if !*verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log = zap.Must(cfg.Build()).Sugar()
	defer log.Sync()

	rec, err := wikigenre.LoadRecord(*file)
	if err != nil {
		log.Fatalf("Error reading genres: %v", err)
	}

	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to mongo: %v", err)
	}
	defer session.Close()

	for _, idx := range indexes {
		err = session.DB(*dbname).C(*collection).EnsureIndex(idx)
		if err != nil {
			log.Fatalf("Error creating index on %v: %v", idx.Key, err)
		}
	}
	load(rec, session.DB(*dbname))
}
