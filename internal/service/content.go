// Package service implements the business logic between handlers and repositories.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/gosimple/slug"
)

// wordsPerMinute is the reading speed used to derive post read time.
const wordsPerMinute = 200

// renderMarkdown converts markdown content to HTML for detail responses.
func renderMarkdown(markdownStr string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownStr))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return string(markdown.Render(doc, renderer))
}

// estimateReadTime returns the reading time in whole minutes, at least 1 for
// non-empty content.
func estimateReadTime(content string) uint {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return uint(minutes)
}

// uniqueSlug derives a URL slug from title and disambiguates collisions with
// a numeric suffix.
func uniqueSlug(ctx context.Context, title string, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
