// List the streams of a multistream dump that hold the given artists'
// pages, as offset, page count and titles.
package main

import (
	"compress/bzip2"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	wikigenre "github.com/dustin/go-wikigenre"
	"github.com/dustin/go-wikigenre/artistnet"
)

var log *zap.SugaredLogger

func openIndex(path string) (io.ReadCloser, io.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(path, ".bz2") {
		return f, bzip2.NewReader(f), nil
	}
	return f, f, nil
}

func loadWant(path string) (func(string) bool, error) {
	if path == "" {
		return nil, nil
	}
	m, err := artistnet.LoadMatcher(path)
	if err != nil {
		return nil, err
	}
	return m.Title, nil
}

func main() {
	artistList := flag.String("artists", "", "artist list, one per line (default: every stream)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:  %s [-artists file] index.txt[.bz2]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(64)
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer l.Sync()
	log = l.Sugar()

	want, err := loadWant(*artistList)
	if err != nil {
		log.Fatalf("Error loading artist list: %v", err)
	}

	c, r, err := openIndex(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening %v: %v", flag.Arg(0), err)
	}
	defer c.Close()

	streams, err := wikigenre.ReadStreams(r, want)
	if err != nil {
		log.Fatalf("Error reading index: %v", err)
	}

	pages := 0
	for _, s := range streams {
		pages += s.Pages
		fmt.Printf("%d\t%d\t%s\n", s.Offset, s.Pages, strings.Join(s.Wanted, "|"))
	}
	log.Infof("%s streams holding %s pages", humanize.Comma(int64(len(streams))),
		humanize.Comma(int64(pages)))
}
