package wikigenre

import (
	"compress/bzip2"
	"context"
	"io"
	"os"
	"reflect"
	"sort"
	"testing"
)

const (
	testDump      = "testdata/artists-multistream.xml.bz2"
	testDumpIndex = "testdata/artists-multistream-index.txt.bz2"
)

var wantArtists = map[string]bool{"The Clash": true, "Yes (band)": true, "Genesis (band)": true}

func wantTitle(title string) bool {
	return wantArtists[title]
}

func readTestStreams(t *testing.T, want func(string) bool) []Stream {
	t.Helper()
	f, err := os.Open(testDumpIndex)
	if err != nil {
		t.Fatalf("Error opening index: %v", err)
	}
	defer f.Close()
	streams, err := ReadStreams(bzip2.NewReader(f), want)
	if err != nil {
		t.Fatalf("Error reading index: %v", err)
	}
	return streams
}

func drain(t *testing.T, src Source) []string {
	t.Helper()
	var keys []string
	for {
		d, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading dump: %v", err)
		}
		keys = append(keys, d.Key)
	}
	sort.Strings(keys)
	return keys
}

func TestIndexedDumpSelected(t *testing.T) {
	streams := readTestStreams(t, wantTitle)
	if len(streams) != 3 {
		t.Fatalf("Expected three streams, got %+v", streams)
	}

	r, err := OpenIndexedDump(testDump, streams, 2, wantTitle)
	if err != nil {
		t.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()
	if r.SiteInfo.SiteName != "Wikipedia" {
		t.Fatalf("Unexpected site info %+v", r.SiteInfo)
	}

	exp := []string{"Genesis", "The Clash", "Yes"}
	if got := drain(t, r); !reflect.DeepEqual(exp, got) {
		t.Fatalf("Expected %v, got %v", exp, got)
	}
}

func TestIndexedDumpEverything(t *testing.T) {
	r, err := OpenIndexedDump(testDump, readTestStreams(t, nil), 3, nil)
	if err != nil {
		t.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	exp := []string{"Genesis", "The Clash", "Wolfgang Amadeus Mozart", "Yes"}
	if got := drain(t, r); !reflect.DeepEqual(exp, got) {
		t.Fatalf("Expected %v, got %v", exp, got)
	}
}

func TestIndexedDumpBatch(t *testing.T) {
	r, err := OpenIndexedDump(testDump, readTestStreams(t, wantTitle), 1, wantTitle)
	if err != nil {
		t.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	rep, err := (&Batch{Workers: 2}).Run(context.Background(), r)
	if err != nil {
		t.Fatalf("Error running batch: %v", err)
	}
	exp := map[string][]string{
		"The Clash": {"punk rock", "rock and roll"},
		"Yes":       {"progressive rock", "art rock"},
		"Genesis":   {"progressive rock", "pop rock (later)"},
	}
	if rep.Record.Len() != len(exp) {
		t.Fatalf("Expected %v artists, got %v", len(exp), rep.Record.Keys())
	}
	for k, v := range exp {
		if got, _ := rep.Record.Get(k); !reflect.DeepEqual(v, got) {
			t.Errorf("%v: expected %v, got %v", k, v, got)
		}
	}
}

func TestIndexedDumpBadOffset(t *testing.T) {
	r, err := OpenIndexedDump(testDump, []Stream{{Offset: 1, Pages: 1}}, 1, nil)
	if err != nil {
		t.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	if _, err := r.Next(); err == nil || err == io.EOF {
		t.Fatalf("Expected a decoding error, got %v", err)
	}
}

func TestIndexedDumpErrorStopsFeeder(t *testing.T) {
	bad := []Stream{{Offset: 1, Pages: 1}, {Offset: 1, Pages: 1}, {Offset: 1, Pages: 1}}
	r, err := OpenIndexedDump(testDump, bad, 1, nil)
	if err != nil {
		t.Fatalf("Error opening dump: %v", err)
	}

	// No Close here: a failed read has to release the workers itself.
	if _, err := r.Next(); err == nil || err == io.EOF {
		t.Fatalf("Expected a decoding error, got %v", err)
	}
	select {
	case <-r.done:
	default:
		t.Fatalf("Reader still open after a worker error")
	}
}

func TestIndexedDumpClose(t *testing.T) {
	r, err := OpenIndexedDump(testDump, readTestStreams(t, nil), 2, nil)
	if err != nil {
		t.Fatalf("Error opening dump: %v", err)
	}
	if _, err := r.Next(); err != nil {
		t.Fatalf("Error reading first page: %v", err)
	}
	r.Close()
	r.Close()
}

func TestOpenIndexedDumpMissing(t *testing.T) {
	if _, err := OpenIndexedDump("testdata/nope.xml.bz2", nil, 1, nil); !os.IsNotExist(err) {
		t.Fatalf("Expected a not-exist error, got %v", err)
	}
}
