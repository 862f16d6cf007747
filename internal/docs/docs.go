// Package docs embeds the on-demand help topics shipped with the binary.
package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed content/*.md
var content embed.FS

const dir = "content"

// Topics lists every embedded topic name, sorted.
func Topics() []string {
	entries, err := content.ReadDir(dir)
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || name == "" {
			continue
		}
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown body for a topic. Topic names are matched
// case-insensitively.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := content.ReadFile(dir + "/" + topic + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}
