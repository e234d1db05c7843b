package ui

import (
	"regexp"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// fit truncates and pads s to exactly width runes.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

var (
	markupTag   = regexp.MustCompile(`\[/?[a-z_]+(?:=[^\]]*)?\]`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	htmlBreak   = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlElement = regexp.MustCompile(`<[^>]+>`)
)

// plainText strips site markup such as [character=1]Name[/character] and
// inline HTML from a description.
func plainText(s string) string {
	s = htmlBreak.ReplaceAllString(s, "\n")
	s = htmlElement.ReplaceAllString(s, "")
	s = markupTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// joinNonEmpty joins the non-blank values with sep.
func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
