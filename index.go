package wikigenre

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadIndexLine is returned for an index line that isn't
// offset:id:title.
var ErrBadIndexLine = errors.New("bad index line")

// An IndexEntry is one page listed in a multistream dump index.
type IndexEntry struct {
	StreamOffset int64
	PageID       int64
	Title        string
}

func (i IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", i.StreamOffset, i.PageID, i.Title)
}

// An IndexReader reads the index of a multistream dump.
type IndexReader struct {
	r          *bufio.Scanner
	line       int
	base       int64
	prevOffset int64
}

// NewIndexReader reads index lines from r.  Decompression is up to
// the caller.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{r: bufio.NewScanner(r)}
}

// Next gets the next entry from the index.
//
// Old dumps wrote offsets as signed 32 bit numbers.  Offsets only
// grow, so one that goes backwards has wrapped and is corrected.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.r.Scan() {
		err := ir.r.Err()
		if err == nil {
			err = io.EOF
		}
		return IndexEntry{}, err
	}
	ir.line++
	parts := strings.SplitN(ir.r.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("%w at line %d", ErrBadIndexLine, ir.line)
	}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("%w at line %d: %v", ErrBadIndexLine, ir.line, err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("%w at line %d: %v", ErrBadIndexLine, ir.line, err)
	}
	if offset < ir.prevOffset {
		ir.base += 1 << 32
	}
	ir.prevOffset = offset

	return IndexEntry{StreamOffset: offset + ir.base, PageID: id, Title: parts[2]}, nil
}

// A Stream is one compressed block of a multistream dump.
type Stream struct {
	Offset int64
	// Pages is how many pages the stream holds.
	Pages int
	// Wanted are the selected titles found in it.
	Wanted []string
}

// ReadStreams groups the index into streams.  With want nil every
// stream is returned; otherwise only streams holding at least one
// title want accepts.
func ReadStreams(r io.Reader, want func(title string) bool) ([]Stream, error) {
	ir := NewIndexReader(r)
	var rv []Stream
	var cur *Stream
	flush := func() {
		if cur != nil && (want == nil || len(cur.Wanted) > 0) {
			rv = append(rv, *cur)
		}
	}
	for {
		e, err := ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if cur == nil || e.StreamOffset != cur.Offset {
			flush()
			cur = &Stream{Offset: e.StreamOffset}
		}
		cur.Pages++
		if want != nil && want(e.Title) {
			cur.Wanted = append(cur.Wanted, e.Title)
		}
	}
	flush()
	return rv, nil
}
