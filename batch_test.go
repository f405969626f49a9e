package wikigenre

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBatchRun(t *testing.T) {
	docs := []Document{
		{Key: "The Clash", Name: "The_Clash", Text: clash},
		{Key: "Yes", Name: "Yes_(band)", Text: "'''Yes''' are a band."},
		{Key: "Rush", Name: "Rush", Text: "{{Infobox band\n| genre = [[Rock music|Rock]]\n}}"},
		{Key: "The Specials", Name: "The_Specials", Text: "{{Infobox band\n| genre = [[Ska]], [[2 Tone (music genre)|2 Tone]]\n}}"},
	}
	b := &Batch{
		Extractor: NewExtractor(DefaultPolicy()),
		Workers:   3,
		Top:       10,
		Logger:    zaptest.NewLogger(t),
	}
	rep, err := b.Run(context.Background(), NewSliceSource(docs))
	if err != nil {
		t.Fatalf("Error running batch: %v", err)
	}

	if exp := []string{"The Clash", "The Specials"}; !reflect.DeepEqual(exp, rep.Record.Keys()) {
		t.Fatalf("Expected %#v, got %#v", exp, rep.Record.Keys())
	}
	var statuses []Status
	for i, o := range rep.Outcomes {
		if o.Seq != i {
			t.Fatalf("Outcome %v has seq %v", i, o.Seq)
		}
		statuses = append(statuses, o.Status)
	}
	exp := []Status{StatusFound, StatusNotFound, StatusNotFound, StatusFound}
	if !reflect.DeepEqual(exp, statuses) {
		t.Fatalf("Expected %v, got %v", exp, statuses)
	}
	if !errors.Is(rep.Outcomes[2].Err, ErrNoGenres) {
		t.Fatalf("Expected ErrNoGenres for a bare rock field, got %v", rep.Outcomes[2].Err)
	}

	s := rep.Summary
	if s.Processed != 4 || s.WithGenres != 2 || s.WithoutGenres != 2 || s.Failed != 0 {
		t.Fatalf("Unexpected summary %+v", s)
	}
	if s.DistinctGenres != 4 {
		t.Fatalf("Expected 4 distinct genres, got %+v", s)
	}
}

func TestBatchKeepsSourceOrder(t *testing.T) {
	var docs []Document
	var exp []string
	for i := 0; i < 200; i++ {
		k := fmt.Sprintf("artist %03d", i)
		docs = append(docs, Document{Key: k, Text: k})
		exp = append(exp, k)
	}
	b := &Batch{
		Workers:     8,
		ReportEvery: 50,
		genres: func(text string) ([]string, error) {
			return []string{text}, nil
		},
	}
	rep, err := b.Run(context.Background(), NewSliceSource(docs))
	if err != nil {
		t.Fatalf("Error running batch: %v", err)
	}
	if !reflect.DeepEqual(exp, rep.Record.Keys()) {
		t.Fatalf("Record is out of source order")
	}
}

func TestBatchTimeout(t *testing.T) {
	release := make(chan struct{})
	b := &Batch{
		Workers:     2,
		FileTimeout: 20 * time.Millisecond,
		Logger:      zaptest.NewLogger(t),
		genres: func(text string) ([]string, error) {
			if text == "slow" {
				<-release
			}
			return []string{"ska"}, nil
		},
	}
	docs := []Document{{Key: "Slow", Text: "slow"}, {Key: "Fast", Text: "fast"}}
	rep, err := b.Run(context.Background(), NewSliceSource(docs))
	close(release)
	if err != nil {
		t.Fatalf("Error running batch: %v", err)
	}

	if rep.Outcomes[0].Status != StatusTimedOut || !errors.Is(rep.Outcomes[0].Err, ErrTimeout) {
		t.Fatalf("Expected the slow document to time out, got %+v", rep.Outcomes[0])
	}
	if rep.Outcomes[1].Status != StatusFound {
		t.Fatalf("Expected the fast document to be found, got %+v", rep.Outcomes[1])
	}
	if rep.Summary.Failed != 1 || rep.Record.Len() != 1 {
		t.Fatalf("Unexpected summary %+v", rep.Summary)
	}
}

func TestBatchUnreadableDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "The_Clash.txt"), []byte(clash), 0o644); err != nil {
		t.Fatalf("Error writing page: %v", err)
	}
	src := NewFileSource([]string{
		filepath.Join(dir, "Missing.txt"),
		filepath.Join(dir, "The_Clash.txt"),
	})

	b := &Batch{Workers: 1, Logger: zaptest.NewLogger(t)}
	rep, err := b.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Error running batch: %v", err)
	}
	var rerr *ReadError
	if rep.Outcomes[0].Status != StatusFailed || !errors.As(rep.Outcomes[0].Err, &rerr) {
		t.Fatalf("Expected a read failure, got %+v", rep.Outcomes[0])
	}
	if _, ok := rep.Record.Get("The Clash"); !ok {
		t.Fatalf("Expected the readable page to be processed")
	}
}

type brokenSource struct {
	n int
}

var errTruncated = errors.New("truncated dump")

func (s *brokenSource) Next() (Document, error) {
	s.n++
	if s.n > 1 {
		return Document{}, errTruncated
	}
	return Document{Key: "The Clash", Text: clash}, nil
}

func TestBatchSourceFailure(t *testing.T) {
	b := &Batch{Workers: 2}
	rep, err := b.Run(context.Background(), &brokenSource{})
	if err != errTruncated {
		t.Fatalf("Expected %v, got %v", errTruncated, err)
	}
	if rep.Record.Len() != 1 || rep.Summary.Processed != 1 {
		t.Fatalf("Expected the page read before the failure, got %+v", rep.Summary)
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Batch{Workers: 1}
	_, err := b.Run(ctx, NewSliceSource([]Document{{Key: "a", Text: clash}}))
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected nil or a cancellation, got %v", err)
	}
}

func TestStatusString(t *testing.T) {
	if StatusTimedOut.String() != "timed_out" || Status(9).String() != "Status(9)" {
		t.Fatalf("Unexpected status names")
	}
}
