package wikigenre

import (
	"io"
	"strings"
	"testing"
)

const dumpXML = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo>
    <sitename>Wikipedia</sitename>
    <base>https://en.wikipedia.org/wiki/Main_Page</base>
  </siteinfo>
  <page>
    <title>The Clash</title>
    <ns>0</ns>
    <id>1</id>
    <revision>
      <id>10</id>
      <text>{{Infobox band
| genre = Punk rock, Reggae
}}</text>
    </revision>
  </page>
  <page>
    <title>Talk:The Clash</title>
    <ns>1</ns>
    <id>2</id>
    <revision><id>11</id><text>chatter</text></revision>
  </page>
  <page>
    <title>Clash</title>
    <ns>0</ns>
    <id>3</id>
    <redirect title="The Clash" />
    <revision><id>12</id><text>#REDIRECT [[The Clash]]</text></revision>
  </page>
  <page>
    <title>Yes (band)</title>
    <ns>0</ns>
    <id>4</id>
    <revision><id>13</id><text>'''Yes''' are a band.</text></revision>
  </page>
</mediawiki>
`

func TestDumpReader(t *testing.T) {
	dr, err := NewDumpReader(strings.NewReader(dumpXML))
	if err != nil {
		t.Fatalf("Error reading dump header: %v", err)
	}
	if dr.SiteInfo.SiteName != "Wikipedia" {
		t.Fatalf("Unexpected site info: %+v", dr.SiteInfo)
	}

	var keys, names []string
	for {
		d, err := dr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading page: %v", err)
		}
		keys = append(keys, d.Key)
		names = append(names, d.Name)
	}

	if strings.Join(keys, ",") != "The Clash,Yes" {
		t.Fatalf("Unexpected keys %v", keys)
	}
	if names[1] != "Yes (band)" {
		t.Fatalf("Expected the title as the name, got %q", names[1])
	}
}

func TestDumpThroughExtractor(t *testing.T) {
	dr, err := NewDumpReader(strings.NewReader(dumpXML))
	if err != nil {
		t.Fatalf("Error reading dump header: %v", err)
	}
	d, err := dr.Next()
	if err != nil {
		t.Fatalf("Error reading page: %v", err)
	}
	got, err := NewExtractor(DefaultPolicy()).Genres(d.Text)
	if err != nil {
		t.Fatalf("Error extracting: %v", err)
	}
	if strings.Join(got, ",") != "punk rock,reggae" {
		t.Fatalf("Unexpected genres %v", got)
	}
}
