// Package wikigenre pulls the genre field out of musical artist
// infoboxes in MediaWiki wikitext.
//
// Pages come from a directory of saved wikitext files (see
// NewDirSource), a MediaWiki XML dump (NewDumpReader) or selected
// streams of a bzip2 multistream dump (ReadStreams, OpenIndexedDump).
// An Extractor turns each page into a cleaned, deduplicated genre list
// and a Batch runs an Extractor over a whole Source, collecting the
// results into an ordered Record.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
package wikigenre
