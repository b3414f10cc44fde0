// Package docs holds the user manual of bgt, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing all the others.
const index = "readme"

// GetTopic returns the content of a documentation topic.
func GetTopic(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, see 'bgt topic' for the list: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of the topics, concatenated. The topic "*"
// expands to every topic.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			names = GetAllTopics()
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of all topics, except the index.
func GetAllTopics() []string {
	var topics []string
	files, _ := fs.Glob(docs, "*.md")
	for _, file := range files {
		if name := strings.TrimSuffix(path.Base(file), ".md"); name != index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics
}
