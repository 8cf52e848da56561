package telegram

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday/v2"

	"github.com/set-night/sofia/internal/domain"
)

// SplitMessage splits a message into chunks of maxLen characters,
// trying to split at newlines when possible.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	for len(text) > 0 {
		if utf8.RuneCountInString(text) <= maxLen {
			parts = append(parts, text)
			break
		}

		runes := []rune(text)
		splitAt := maxLen

		chunk := string(runes[:maxLen])
		lastNewline := strings.LastIndex(chunk, "\n")
		if lastNewline > len(chunk)/2 {
			splitAt = utf8.RuneCountInString(chunk[:lastNewline]) + 1
		}

		parts = append(parts, string(runes[:splitAt]))
		text = string(runes[splitAt:])
	}

	return parts
}

// FixMarkdown closes a dangling code fence or inline code span so a chunk cut
// out of a longer answer still renders.
func FixMarkdown(text string) string {
	if strings.Count(text, "```")%2 != 0 {
		text += "\n```"
	}
	return fixInlineCode(text)
}

func fixInlineCode(text string) string {
	var builder strings.Builder
	inCodeBlock := false
	inlineOpen := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && string(runes[i:i+3]) == "```" {
			if inlineOpen {
				builder.WriteRune('`')
				inlineOpen = false
			}
			inCodeBlock = !inCodeBlock
			builder.WriteString("```")
			i += 2
			continue
		}

		if !inCodeBlock && runes[i] == '`' {
			inlineOpen = !inlineOpen
		}

		builder.WriteRune(runes[i])
	}

	if inlineOpen {
		builder.WriteRune('`')
	}

	return builder.String()
}

// MarkdownToHTML converts model Markdown into the HTML subset accepted by
// Telegram's HTML parse mode.
func MarkdownToHTML(md string) (string, error) {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
	rendered := blackfriday.Run([]byte(FixMarkdown(md)),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.Strikethrough))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("parse rendered markdown: %w", err)
	}

	r := &htmlRenderer{}
	r.children(doc.Find("body"))
	return strings.TrimSpace(r.sb.String()), nil
}

// blockParents are elements whose whitespace-only text children are layout noise.
var blockParents = map[string]bool{
	"body": true, "ul": true, "ol": true, "li": true, "blockquote": true,
	"table": true, "thead": true, "tbody": true, "tr": true,
}

type htmlRenderer struct {
	sb    strings.Builder
	depth int
}

func (r *htmlRenderer) children(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		r.node(c)
	})
}

func (r *htmlRenderer) node(s *goquery.Selection) {
	switch tag := goquery.NodeName(s); tag {
	case "#text":
		text := s.Text()
		if strings.TrimSpace(text) == "" && blockParents[goquery.NodeName(s.Parent())] {
			return
		}
		r.sb.WriteString(html.EscapeString(text))
	case "p":
		r.children(s)
		r.endBlock()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		r.wrap("b", s)
		r.endBlock()
	case "strong", "b":
		r.wrap("b", s)
	case "em", "i":
		r.wrap("i", s)
	case "del", "s":
		r.wrap("s", s)
	case "u", "ins":
		r.wrap("u", s)
	case "code":
		r.sb.WriteString("<code>" + html.EscapeString(s.Text()) + "</code>")
	case "pre":
		r.sb.WriteString("<pre>" + html.EscapeString(strings.TrimRight(s.Text(), "\n")) + "</pre>")
		r.endBlock()
	case "a":
		href, _ := s.Attr("href")
		if href == "" {
			r.children(s)
			return
		}
		r.sb.WriteString(`<a href="` + html.EscapeString(href) + `">`)
		r.children(s)
		r.sb.WriteString("</a>")
	case "ul", "ol":
		r.list(s, tag == "ol")
		if r.depth == 0 {
			r.endBlock()
		}
	case "blockquote":
		inner := &htmlRenderer{depth: r.depth}
		inner.children(s)
		r.sb.WriteString("<blockquote>" + strings.TrimSpace(inner.sb.String()) + "</blockquote>")
		r.endBlock()
	case "br":
		r.sb.WriteString("\n")
	case "hr":
		r.sb.WriteString("――――――――")
		r.endBlock()
	case "table":
		r.table(s)
		r.endBlock()
	case "img":
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		if alt == "" {
			alt = src
		}
		r.sb.WriteString(`<a href="` + html.EscapeString(src) + `">` + html.EscapeString(alt) + "</a>")
	default:
		r.children(s)
	}
}

func (r *htmlRenderer) wrap(tag string, s *goquery.Selection) {
	r.sb.WriteString("<" + tag + ">")
	r.children(s)
	r.sb.WriteString("</" + tag + ">")
}

func (r *htmlRenderer) list(s *goquery.Selection, ordered bool) {
	n := 1
	if start, ok := s.Attr("start"); ok {
		if v, err := strconv.Atoi(start); err == nil {
			n = v
		}
	}
	indent := strings.Repeat("  ", r.depth)

	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		item := &htmlRenderer{depth: r.depth + 1}
		item.children(li)

		marker := "•"
		if ordered {
			marker = strconv.Itoa(n) + "."
			n++
		}
		r.sb.WriteString(indent + marker + " " + strings.TrimSpace(item.sb.String()) + "\n")
	})
}

func (r *htmlRenderer) table(s *goquery.Selection) {
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			inner := &htmlRenderer{}
			inner.children(cell)
			text := strings.TrimSpace(inner.sb.String())
			if goquery.NodeName(cell) == "th" && text != "" {
				text = "<b>" + text + "</b>"
			}
			cells = append(cells, text)
		})
		r.sb.WriteString(strings.Join(cells, " | ") + "\n")
	})
}

func (r *htmlRenderer) endBlock() {
	current := r.sb.String()
	trimmed := strings.TrimRight(current, "\n")
	if trimmed == "" {
		return
	}
	missing := 2 - (len(current) - len(trimmed))
	for i := 0; i < missing; i++ {
		r.sb.WriteByte('\n')
	}
}

// FormatSources renders grounding sources as a numbered list of links.
func FormatSources(title string, sources []domain.GroundingSource) string {
	if len(sources) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("<b>" + html.EscapeString(title) + "</b>\n")
	for i, src := range sources {
		fmt.Fprintf(&sb, "%d. <a href=\"%s\">%s</a>\n", i+1,
			html.EscapeString(src.URI), html.EscapeString(src.DisplayTitle()))
	}
	return strings.TrimRight(sb.String(), "\n")
}
