package feed

import (
	"strings"
	"testing"

	"github.com/lysyi3m/feed-notify/app/database"
)

func TestPolicy_Precedence(t *testing.T) {
	policy := NewPolicy([]string{"urgent"}, []string{"spam"}, PolicyOptions{AlwaysNotifyPartition: 5})

	tests := []struct {
		name        string
		title       string
		description string
		partition   int
		expected    bool
	}{
		{"stopword wins over keyword", "urgent spam job", "", 1, false},
		{"stopword wins over override", "spam offer", "", 5, false},
		{"stopword in description", "urgent fix", "contains SPAM inside", 2, false},
		{"category override", "routine task", "", 5, true},
		{"keyword", "urgent fix", "", 2, true},
		{"keyword in description", "fix", "this is Urgent", 2, true},
		{"nothing matches", "routine", "", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.ShouldNotify(tt.title, tt.description, tt.partition)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPolicy_EvaluateReason(t *testing.T) {
	policy := NewPolicy([]string{"Golang"}, []string{"casino"}, PolicyOptions{AlwaysNotifyPartition: 5})

	notify, reason := policy.Evaluate("Golang developer", "", 1)
	if !notify || !strings.Contains(reason, "golang") {
		t.Errorf("Expected keyword match reason, got %v '%s'", notify, reason)
	}

	notify, reason = policy.Evaluate("Casino site", "", 5)
	if notify || !strings.Contains(reason, "casino") {
		t.Errorf("Expected stopword reason, got %v '%s'", notify, reason)
	}
}

func TestPolicy_CyrillicCaseInsensitive(t *testing.T) {
	policy := NewPolicy([]string{"Парсер"}, nil, PolicyOptions{})

	if !policy.ShouldNotify("Нужен ПАРСЕР сайта", "", 1) {
		t.Error("Expected case-insensitive match on Cyrillic keyword")
	}
}

func TestPolicy_OverrideDisabled(t *testing.T) {
	policy := NewPolicy(nil, nil, PolicyOptions{AlwaysNotifyPartition: -1})

	if policy.ShouldNotify("anything", "", 5) {
		t.Error("Expected no notification when override disabled and no keywords")
	}
}

func TestPolicy_EmptySets(t *testing.T) {
	policy := NewPolicy(nil, nil, PolicyOptions{AlwaysNotifyPartition: 5})

	if !policy.ShouldNotify("anything", "", 5) {
		t.Error("Expected override to notify with empty sets")
	}
	if policy.ShouldNotify("anything", "", 1) {
		t.Error("Expected no notification with empty keyword set")
	}
	if policy.KeywordCount() != 0 || policy.StopwordCount() != 0 {
		t.Error("Expected empty term counts")
	}
}

func TestPolicy_FormatMessage(t *testing.T) {
	policy := NewPolicy(nil, nil, PolicyOptions{DescriptionLimit: 13})

	message := policy.FormatMessage(database.Item{
		Title:       "Bot <urgent>",
		Description: "Подробное описание проекта",
		Link:        "https://example.com/p/1?a=1&b=2",
		PubDate:     "Mon, 03 Jul 2023 10:00:00 GMT",
		PartitionID: 3,
	})

	order := []string{
		"<b>New project</b>",
		"<b>Title:</b> Bot &lt;urgent&gt;",
		"<b>Description:</b> Подробное опи...",
		"<b>Category:</b> 3",
		"<b>Published:</b> Mon, 03 Jul 2023 10:00:00 GMT",
		"<b>Link:</b> https://example.com/p/1?a=1&amp;b=2",
	}

	last := -1
	for _, part := range order {
		idx := strings.Index(message, part)
		if idx == -1 {
			t.Fatalf("Expected message to contain '%s', got:\n%s", part, message)
		}
		if idx < last {
			t.Errorf("Expected '%s' to appear after previous field", part)
		}
		last = idx
	}
}

func TestPolicy_FormatMessageOptionalFields(t *testing.T) {
	policy := NewPolicy(nil, nil, PolicyOptions{DescriptionLimit: 300})

	message := policy.FormatMessage(database.Item{
		Title:       "Short",
		Description: "fits",
		Link:        "https://example.com/p/2",
		PartitionID: 1,
	})

	if strings.Contains(message, "Published:") {
		t.Error("Expected no publication date line")
	}
	if strings.Contains(message, "...") {
		t.Error("Expected no truncation marker for short description")
	}

	message = policy.FormatMessage(database.Item{Title: "T", Link: "https://example.com/p/3", PartitionID: 1})
	if strings.Contains(message, "Description:") {
		t.Error("Expected no description line for empty description")
	}
}
