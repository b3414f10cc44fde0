package docs

import (
	"bufio"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics ensures that the index lists every topic, and only them.
func TestTopics(t *testing.T) {
	readme, err := GetTopic(index)
	if err != nil {
		t.Fatal(err)
	}

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(strings.NewReader(readme))
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); m != nil {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("listed topic %q cannot be loaded: %v", topic, err)
		}
	}
	for _, topic := range GetAllTopics() {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, index)
		}
	}
}

// TestTopicTitles ensures that every topic starts with a level 1 heading.
func TestTopicTitles(t *testing.T) {
	for _, topic := range append(GetAllTopics(), index) {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatal(err)
		}
		source := []byte(content)
		root := goldmark.DefaultParser().Parse(text.NewReader(source))
		heading, ok := root.FirstChild().(*ast.Heading)
		if !ok || heading.Level != 1 {
			t.Errorf("topic %q does not start with a level 1 heading", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"# Dates", "# Ledger file", "# Export"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopics(*) misses %q", title)
		}
	}
	if _, err := GetTopics("nope"); err == nil {
		t.Errorf("GetTopics(nope) error = nil")
	}
}
