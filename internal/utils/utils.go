package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
	"github.com/muesli/reflow/truncate"
)

// NormalizeURL ensures the URL carries a scheme; scheme-less input gets
// https:// prepended.
func NormalizeURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}

// GenerateRunName creates a random, memorable name for an audit run using
// namegenerator (e.g. "wispy-dust")
func GenerateRunName() string {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	name := nameGenerator.Generate()

	// Some names might have underscores; convert to hyphens for consistency
	name = strings.ReplaceAll(name, "_", "-")

	return name
}

// TruncateText shortens text to width cells, appending an ellipsis when cut
func TruncateText(text string, width int) string {
	return truncate.StringWithTail(text, uint(width), "…")
}

// Titleize turns a hyphen- or underscore-separated identifier into a
// human-readable label ("first-contentful-paint" -> "First Contentful Paint")
func Titleize(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
