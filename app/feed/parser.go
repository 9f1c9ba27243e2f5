package feed

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
	sanitizer    *bluemonday.Policy
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

// Run parses a feed document into flat records. Parsing is all-or-nothing.
func (p *Parser) Run(data []byte) ([]Record, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	records := make([]Record, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		records = append(records, p.normalizeItem(item))
	}

	return records, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Record {
	return Record{
		Title:       strings.TrimSpace(item.Title),
		Description: p.plainText(item.Description),
		Link:        strings.TrimSpace(item.Link),
		PubDate:     strings.TrimSpace(item.Published),
	}
}

func (p *Parser) plainText(s string) string {
	if s == "" {
		return ""
	}
	stripped := p.sanitizer.Sanitize(s)
	return strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
}
