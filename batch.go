package wikigenre

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrTimeout marks a document that took longer than the batch's
// per-file budget.
var ErrTimeout = errors.New("document exceeded its time budget")

// Status is what became of one document.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusFailed
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// An Outcome is the result for one document.
type Outcome struct {
	Seq    int
	Key    string
	Name   string
	Genres []string
	Status Status
	Err    error
}

// A Report is everything a batch produced.
type Report struct {
	Record   *Record
	Outcomes []Outcome
	Summary  Summary
}

// A Batch extracts genres from many documents.
type Batch struct {
	Extractor *Extractor
	// Workers is the number of documents parsed at once.  Zero means
	// GOMAXPROCS.
	Workers int
	// FileTimeout, if positive, is the most time one document may take.
	// Documents over budget are skipped and reported.
	FileTimeout time.Duration
	// Top is how many genres the summary lists.
	Top int
	// ReportEvery logs progress every so many documents.
	ReportEvery int64
	Logger      *zap.Logger

	genres func(string) ([]string, error)
}

func (b *Batch) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Batch) extract() func(string) ([]string, error) {
	if b.genres != nil {
		return b.genres
	}
	ex := b.Extractor
	if ex == nil {
		ex = NewExtractor(DefaultPolicy())
	}
	return ex.Genres
}

type job struct {
	seq int
	doc Document
	err error
}

// Run processes every document src yields.
//
// Problems with individual documents are recorded in their outcomes
// and never stop the batch; the returned error is for cancellation of
// ctx or a source that breaks down (e.g. a truncated dump), in which
// case the report still covers everything read before it.
func (b *Batch) Run(ctx context.Context, src Source) (*Report, error) {
	log := b.logger()
	extract := b.extract()
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	every := b.ReportEvery
	if every <= 0 {
		every = 1000
	}

	jobs := make(chan job, workers)
	results := make(chan Outcome, workers)

	var outcomes []Outcome
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for o := range results {
			outcomes = append(outcomes, o)
		}
	}()

	var srcErr error
	var done int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for seq := 0; ; seq++ {
			doc, err := src.Next()
			if err == io.EOF {
				return nil
			}
			var rerr *ReadError
			if err != nil && !errors.As(err, &rerr) {
				srcErr = err
				return nil
			}
			select {
			case jobs <- job{seq: seq, doc: doc, err: err}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				o := b.process(gctx, extract, j)
				select {
				case results <- o:
				case <-gctx.Done():
					return gctx.Err()
				}
				if n := atomic.AddInt64(&done, 1); n%every == 0 {
					log.Info("progress",
						zap.String("processed", humanize.Comma(n)),
						zap.Float64("per_second", float64(n)/time.Since(start).Seconds()))
				}
			}
			return nil
		})
	}
	err := g.Wait()
	close(results)
	<-collected

	rep := b.fold(outcomes)
	if err == nil {
		err = srcErr
	}
	return rep, err
}

// fold builds the record in source order, whatever order the workers
// finished in.
func (b *Batch) fold(outcomes []Outcome) *Report {
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Seq < outcomes[j].Seq })

	rec := NewRecord()
	var c Counts
	for _, o := range outcomes {
		c.Processed++
		switch o.Status {
		case StatusFound:
			c.Found++
			rec.Set(o.Key, o.Genres)
		case StatusFailed, StatusTimedOut:
			c.Failed++
		}
	}
	return &Report{
		Record:   rec,
		Outcomes: outcomes,
		Summary:  Summarize(rec, c, b.Top),
	}
}

func (b *Batch) process(ctx context.Context, extract func(string) ([]string, error), j job) Outcome {
	log := b.logger().With(zap.String("artist", j.doc.Key))
	o := Outcome{Seq: j.seq, Key: j.doc.Key, Name: j.doc.Name}
	if j.err != nil {
		o.Status, o.Err = StatusFailed, j.err
		log.Warn("unreadable document", zap.Error(j.err))
		return o
	}

	genres, err := b.withBudget(ctx, extract, j.doc.Text)
	switch {
	case err == nil:
		o.Status, o.Genres = StatusFound, genres
		log.Info("genres found", zap.Strings("genres", genres))
	case IsNotFound(err):
		o.Status, o.Err = StatusNotFound, err
		log.Info("no genres found in infobox", zap.String("reason", err.Error()))
	case errors.Is(err, ErrTimeout):
		o.Status, o.Err = StatusTimedOut, err
		log.Warn("skipping document", zap.Duration("budget", b.FileTimeout), zap.Error(err))
	default:
		o.Status, o.Err = StatusFailed, err
		log.Warn("error processing document", zap.Error(err))
	}
	return o
}

func (b *Batch) withBudget(ctx context.Context, extract func(string) ([]string, error), text string) ([]string, error) {
	if b.FileTimeout <= 0 {
		return extract(text)
	}

	type result struct {
		genres []string
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		g, err := extract(text)
		ch <- result{g, err}
	}()

	t := time.NewTimer(b.FileTimeout)
	defer t.Stop()
	select {
	case r := <-ch:
		return r.genres, r.err
	case <-t.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
