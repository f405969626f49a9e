// Load artist genres into a SQLite database
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	wikigenre "github.com/dustin/go-wikigenre"
)

var (
	dbPath = flag.String("db", "artist_genres.db", "SQLite database file")
	top    = flag.Int("top", 15, "Number of most common genres to show")
)

var log *zap.SugaredLogger

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

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	log = zap.Must(zap.NewDevelopment()).Sugar()
	defer log.Sync()

	rec, err := wikigenre.LoadRecord(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading genres: %v", err)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("Error opening %v: %v", *dbPath, err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		log.Fatalf("Error creating schema: %v", err)
	}

	start := time.Now()
	n, err := store(db, rec)
	if err != nil {
		log.Fatalf("Error storing genres: %v", err)
	}
	log.Infof("Stored %s artists in %v", humanize.Comma(int64(n)), time.Since(start))

	counts, err := topGenres(db, *top)
	if err != nil {
		log.Fatalf("Error counting genres: %v", err)
	}
	for _, gc := range counts {
		fmt.Printf("%s: %s artists\n", gc.Genre, humanize.Comma(int64(gc.Artists)))
	}
}
