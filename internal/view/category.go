// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import "strings"

// categoryEmojis maps category fragments to badge emoji, checked in order so
// the more specific fragments win.
var categoryEmojis = []struct {
	fragment string
	emoji    string
}{
	{"cv", "👁️"},
	{"vision", "👁️"},
	{"cl", "💬"},
	{"nlp", "💬"},
	{"lg", "🤖"},
	{"learning", "🤖"},
	{"ai", "🧠"},
	{"ro", "🤖"},
	{"robot", "🤖"},
	{"as", "🎵"},
	{"audio", "🎵"},
}

// CategoryEmoji returns the badge emoji for a comma-joined category string.
func CategoryEmoji(categories string) string {
	if categories == "" {
		return "📄"
	}
	cat := strings.ToLower(categories)
	for _, m := range categoryEmojis {
		if strings.Contains(cat, m.fragment) {
			return m.emoji
		}
	}
	return "📄"
}

// categoryNames maps arXiv category codes to display names, checked in order.
var categoryNames = []struct {
	fragment string
	name     string
}{
	{"cs.cv", "Computer Vision"},
	{"cs.cl", "Natural Language Processing"},
	{"cs.lg", "Machine Learning"},
	{"cs.ai", "Artificial Intelligence"},
	{"cs.ro", "Robotics"},
	{"eess.as", "Audio & Speech"},
	{"stat.ml", "Statistics"},
}

// CategoryName returns the display name for a comma-joined category string.
// Unknown categories fall back to the first entry verbatim.
func CategoryName(categories string) string {
	if categories == "" {
		return "General"
	}
	cat := strings.ToLower(categories)
	for _, m := range categoryNames {
		if strings.Contains(cat, m.fragment) {
			return m.name
		}
	}
	return strings.TrimSpace(strings.SplitN(categories, ",", 2)[0])
}
