package feed

import (
	"fmt"
	"html"
	"strings"

	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/match"
)

const truncationMarker = "..."

type PolicyOptions struct {
	AlwaysNotifyPartition int // <= 0 disables the override
	DescriptionLimit      int // runes, <= 0 disables truncation
}

// Policy decides which newly stored items are worth a notification and
// renders them. Keyword and stopword sets are fixed at construction.
type Policy struct {
	keywords  []string
	stopwords []string
	opts      PolicyOptions
}

func NewPolicy(keywords, stopwords []string, opts PolicyOptions) *Policy {
	return &Policy{
		keywords:  match.NormalizeTerms(keywords),
		stopwords: match.NormalizeTerms(stopwords),
		opts:      opts,
	}
}

func (p *Policy) ShouldNotify(title, description string, partitionID int) bool {
	notify, _ := p.Evaluate(title, description, partitionID)
	return notify
}

// Evaluate applies, in order: stopword veto, always-notify partition,
// keyword match. The reason describes the deciding rule.
func (p *Policy) Evaluate(title, description string, partitionID int) (bool, string) {
	text := title + "\n" + description

	if stopword, found := match.FirstIn(text, p.stopwords); found {
		return false, fmt.Sprintf("suppressed by stopword '%s'", stopword)
	}

	if p.opts.AlwaysNotifyPartition > 0 && partitionID == p.opts.AlwaysNotifyPartition {
		return true, fmt.Sprintf("partition %d always notifies", partitionID)
	}

	if keyword, found := match.FirstIn(text, p.keywords); found {
		return true, fmt.Sprintf("matched keyword '%s'", keyword)
	}

	return false, "no keyword matched"
}

func (p *Policy) KeywordCount() int {
	return len(p.keywords)
}

func (p *Policy) StopwordCount() int {
	return len(p.stopwords)
}

// FormatMessage renders an item as a Telegram HTML message
func (p *Policy) FormatMessage(item database.Item) string {
	var b strings.Builder

	b.WriteString("🆕 <b>New project</b>\n\n")
	fmt.Fprintf(&b, "📝 <b>Title:</b> %s\n\n", html.EscapeString(item.Title))

	if item.Description != "" {
		description := truncate(item.Description, p.opts.DescriptionLimit)
		fmt.Fprintf(&b, "📄 <b>Description:</b> %s\n\n", html.EscapeString(description))
	}

	fmt.Fprintf(&b, "🏷 <b>Category:</b> %d\n", item.PartitionID)

	if item.PubDate != "" {
		fmt.Fprintf(&b, "📅 <b>Published:</b> %s\n", html.EscapeString(item.PubDate))
	}

	fmt.Fprintf(&b, "🔗 <b>Link:</b> %s", html.EscapeString(item.Link))

	return b.String()
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationMarker
}
