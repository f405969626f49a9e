package wikigenre

import (
	"encoding/xml"
	"io"
)

// SiteInfo is the header of a MediaWiki XML dump.
type SiteInfo struct {
	SiteName string `xml:"sitename"`
	Base     string `xml:"base"`
}

// A Revision of a dumped page.  Only the text matters here.
type Revision struct {
	ID   uint64 `xml:"id"`
	Text string `xml:"text"`
}

// A Page as it appears in a dump.
type Page struct {
	Title    string    `xml:"title"`
	NS       int       `xml:"ns"`
	ID       uint64    `xml:"id"`
	Redirect *struct{} `xml:"redirect"`
	Revision Revision  `xml:"revision"`
}

// A DumpReader yields article pages from a MediaWiki XML dump as
// documents.  Redirects and pages outside the main namespace are
// skipped.
type DumpReader struct {
	// The toplevel site info.
	SiteInfo SiteInfo
	x        *xml.Decoder
}

// NewDumpReader gets a dump reader reading from the given reader.
// Decompression, if any, is up to the caller.
func NewDumpReader(r io.Reader) (*DumpReader, error) {
	d := xml.NewDecoder(r)
	_, err := d.Token()
	if err != nil {
		return nil, err
	}

	si := SiteInfo{}
	err = d.Decode(&si)
	if err != nil {
		return nil, err
	}

	return &DumpReader{
		SiteInfo: si,
		x:        d,
	}, nil
}

// Next gets the next article from the dump.
func (dr *DumpReader) Next() (Document, error) {
	for {
		p := Page{}
		if err := dr.x.Decode(&p); err != nil {
			return Document{}, err
		}
		if d, ok := pageDocument(p); ok {
			return d, nil
		}
	}
}

// pageDocument converts an article page.  Redirects and other
// namespaces are rejected.
func pageDocument(p Page) (Document, bool) {
	if p.NS != 0 || p.Redirect != nil {
		return Document{}, false
	}
	return Document{
		Key:  TitleKey(p.Title),
		Name: p.Title,
		Text: p.Revision.Text,
	}, true
}
