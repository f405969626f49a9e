// Index artist genres in ElasticSearch
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	wikigenre "github.com/dustin/go-wikigenre"
)

var (
	numWorkers = flag.Int("numWorkers", 4, "Number of bulk loaders")
	index      = flag.String("index", "artists", "Index to load into")
	batchSize  = flag.Int("batch", 1000, "Updates per bulk request")
)

var log *zap.SugaredLogger

var wg = sync.WaitGroup{}

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] artist_genres.json http://localhost:9200/\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type artist struct {
	name   string
	genres []string
	rank   int
}

func artistBody(a artist) map[string]interface{} {
	return map[string]interface{}{
		"name":        a.name,
		"genres":      a.genres,
		"genre_count": len(a.genres),
		"primary":     a.genres[0],
		"rank":        a.rank,
	}
}

func artistHandler(u string, ch <-chan artist) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: u}
	bulkLoader := es.Bulk()

	for a := range ch {
		counter++
		if counter > *batchSize {
			bulkLoader.SendBatch()
			counter = 0
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    a.name,
			Index: *index,
			Type:  "artist",
			Body:  artistBody(a),
		}
		bulkLoader.Update(&ui)
	}
	bulkLoader.Quit()
}

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		usage()
	}
	log = zap.Must(zap.NewDevelopment()).Sugar()
	defer log.Sync()

	filename, esurl := flag.Arg(0), flag.Arg(1)

	rec, err := wikigenre.LoadRecord(filename)
	if err != nil {
		log.Fatalf("Error reading genres: %v", err)
	}

	ch := make(chan artist, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go artistHandler(esurl, ch)
	}

	artists := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	rec.Each(func(key string, genres []string) {
		ch <- artist{name: key, genres: genres, rank: int(artists)}

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
	log.Infof("Indexed %s artists in %v",
		humanize.Comma(artists), time.Since(start))
}
