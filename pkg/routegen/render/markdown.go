package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Layout tokens used by markdown static pages.
const (
	TitleToken       = "{title}"
	DescriptionToken = "{description}"
)

// PageMeta holds the frontmatter of a markdown page.
type PageMeta struct {
	Title       string
	Description string
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		meta.Meta,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithUnsafe(),
	),
)

// Markdown converts a markdown page to an HTML body and returns its frontmatter.
func Markdown(source []byte) (string, PageMeta, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := markdown.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return "", PageMeta{}, fmt.Errorf("converting markdown: %w", err)
	}

	m := PageMeta{}
	data := meta.Get(ctx)
	if v, ok := data["title"].(string); ok {
		m.Title = v
	}
	if v, ok := data["description"].(string); ok {
		m.Description = v
	}
	return buf.String(), m, nil
}

// RenderPage places a converted markdown body into the page layout.
func RenderPage(layout, header, footer, body string, m PageMeta) string {
	page := InjectFragments(layout, header, footer)
	return strings.NewReplacer(
		ContentToken, body,
		TitleToken, html.EscapeString(m.Title),
		DescriptionToken, html.EscapeString(m.Description),
	).Replace(page)
}
