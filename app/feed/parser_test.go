package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Jobs</title>
    <link>https://example.com</link>
    <description>All projects</description>
    <item>
      <title>Landing page in Go</title>
      <link>https://example.com/projects/1</link>
      <description><![CDATA[<p>Need a <b>backend</b> &amp; API</p>]]></description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Logo design</title>
      <link>https://example.com/projects/2</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	records, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Landing page in Go" {
		t.Errorf("Expected title 'Landing page in Go', got: %s", first.Title)
	}
	if first.Link != "https://example.com/projects/1" {
		t.Errorf("Expected link 'https://example.com/projects/1', got: %s", first.Link)
	}
	if first.Description != "Need a backend & API" {
		t.Errorf("Expected stripped description 'Need a backend & API', got: %s", first.Description)
	}
	if first.PubDate != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected raw pub date, got: %s", first.PubDate)
	}

	second := records[1]
	if second.Description != "" {
		t.Errorf("Expected empty description, got: %s", second.Description)
	}
	if second.PubDate != "" {
		t.Errorf("Expected empty pub date, got: %s", second.PubDate)
	}
}

func TestParseRecordWithoutLink(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Jobs</title>
    <item>
      <title>No link here</title>
    </item>
  </channel>
</rss>`

	records, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Link != "" {
		t.Errorf("Expected empty link, got: %s", records[0].Link)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	_, err := NewParser().Run([]byte("this is not a feed"))
	if err == nil {
		t.Error("Expected error for invalid feed, got nil")
	}
}
