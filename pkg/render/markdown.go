// Package render turns note bodies into presentable output.
// It is a presentation concern only; nothing in the notebook depends on it.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/aretw0/quire/pkg/core"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ToHTML renders a markdown body. Raw HTML in the input is omitted.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// NoteHTML renders a derived note as a small standalone fragment:
// the escaped title as a heading, its tag labels, then the body.
func NoteHTML(n core.Note) (string, error) {
	body, err := ToHTML(n.Markdown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("<article>\n<h1>")
	buf.WriteString(escape(n.Title))
	buf.WriteString("</h1>\n")
	if len(n.Tags) > 0 {
		buf.WriteString("<ul class=\"tags\">")
		for _, t := range n.Tags {
			buf.WriteString("<li>")
			buf.WriteString(escape(t.Label))
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>\n")
	}
	buf.WriteString(body)
	buf.WriteString("</article>\n")
	return buf.String(), nil
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
