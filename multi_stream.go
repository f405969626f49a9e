package wikigenre

import (
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"
)

// An IndexedDumpReader reads chosen streams of a bzip2 multistream
// dump in parallel.  Documents come out in whatever order the workers
// finish them.
type IndexedDumpReader struct {
	// The toplevel site info.
	SiteInfo SiteInfo

	want func(title string) bool
	docs chan Document
	errs chan error
	done chan struct{}
	once sync.Once
}

// OpenIndexedDump starts numWorkers readers over the given streams of
// datafn (see ReadStreams).  If want is non-nil only the pages it
// accepts are returned.
//
// Close must be called if the reader isn't drained to io.EOF.
func OpenIndexedDump(datafn string, streams []Stream, numWorkers int,
	want func(title string) bool) (*IndexedDumpReader, error) {

	f, err := os.Open(datafn)
	if err != nil {
		return nil, err
	}
	header, err := NewDumpReader(bzip2.NewReader(f))
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading dump header: %w", err)
	}

	if numWorkers < 1 {
		numWorkers = 1
	}
	rv := &IndexedDumpReader{
		SiteInfo: header.SiteInfo,
		want:     want,
		docs:     make(chan Document, 1000),
		errs:     make(chan error, numWorkers),
		done:     make(chan struct{}),
	}

	workerch := make(chan Stream)
	go func() {
		defer close(workerch)
		for _, s := range streams {
			select {
			case workerch <- s:
			case <-rv.done:
				return
			}
		}
	}()

	wg := sync.WaitGroup{}
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			if err := rv.streamWorker(datafn, workerch); err != nil {
				rv.errs <- err
			}
		}()
	}

	go func() {
		wg.Wait()
		close(rv.docs)
	}()

	return rv, nil
}

func (r *IndexedDumpReader) streamWorker(datafn string, workerch <-chan Stream) error {
	f, err := os.Open(datafn)
	if err != nil {
		return err
	}
	defer f.Close()

	for s := range workerch {
		if _, err := f.Seek(s.Offset, io.SeekStart); err != nil {
			return fmt.Errorf("seeking to stream at %v: %w", s.Offset, err)
		}
		d := xml.NewDecoder(bzip2.NewReader(f))

		for i := 0; i < s.Pages; i++ {
			p := Page{}
			err := d.Decode(&p)
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("decoding stream at %v: %w", s.Offset, err)
			}
			doc, ok := pageDocument(p)
			if !ok || (r.want != nil && !r.want(p.Title)) {
				continue
			}
			select {
			case r.docs <- doc:
			case <-r.done:
				return nil
			}
		}
	}
	return nil
}

// Next gets the next article.  Any worker failure is returned once,
// after which the reader is closed.
func (r *IndexedDumpReader) Next() (Document, error) {
	select {
	case err := <-r.errs:
		r.Close()
		return Document{}, err
	default:
	}

	d, ok := <-r.docs
	if !ok {
		select {
		case err := <-r.errs:
			r.Close()
			return Document{}, err
		default:
		}
		return Document{}, io.EOF
	}
	return d, nil
}

// Close stops the workers.
func (r *IndexedDumpReader) Close() error {
	r.once.Do(func() { close(r.done) })
	return nil
}
