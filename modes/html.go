package modes

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// HTMLToText flattens an HTML fragment into terminal text
// Block elements and <br> break lines, list items get a bullet, table cells
// are separated by two spaces, script and style bodies are dropped
func HTMLToText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0

	newline := func() {
		s := b.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			b.WriteByte('\n')
		}
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input, keep what was read
			return tidy(b.String())

		case html.TextToken:
			if skip > 0 {
				continue
			}
			t := collapse(string(z.Text()))
			if s := b.String(); s == "" || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, " ") {
				t = strings.TrimLeft(t, " ")
			}
			b.WriteString(t)

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if tt == html.StartTagToken {
					skip++
				}
			case "br":
				b.WriteByte('\n')
			case "li":
				newline()
				b.WriteString("- ")
			case "p", "div", "tr", "ul", "ol", "pre", "h1", "h2", "h3":
				newline()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "td", "th":
				b.WriteString("  ")
			case "p", "div", "tr", "li", "ul", "ol", "pre", "h1", "h2", "h3":
				newline()
			}
		}
	}
}

// collapse turns every whitespace run into a single space
func collapse(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// tidy drops trailing spaces on each line and trailing blank lines
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
