package linkextract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"newsletter-agent/internal/domain/entity"
)

var urlPattern = regexp.MustCompile("(?i)https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

// contextRadius is the number of lines taken on each side of a match.
const contextRadius = 2

// trailingPunct is stripped from the end of a match: sentence punctuation is
// almost never part of the URL in prose.
const trailingPunct = ".,;:!?'"

type patternStrategy struct{}

func (patternStrategy) name() string { return "pattern" }

// extract scans the raw content line by line. A URL never spans a newline
// because the pattern excludes whitespace.
func (patternStrategy) extract(content string) []entity.ExtractedLink {
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	var links []entity.ExtractedLink
	for i, line := range lines {
		for _, loc := range urlPattern.FindAllStringIndex(line, -1) {
			match := trimURL(line[loc[0]:loc[1]])
			end := loc[0] + len(match)
			// hrefs in raw HTML carry entities (&amp;) that the parser has already decoded
			raw := html.UnescapeString(match)
			if !isValidURL(raw) {
				continue
			}
			links = append(links, entity.ExtractedLink{
				URL:     raw,
				Text:    lineText(line, loc[0], end),
				Context: lineContext(lines, i),
				Type:    Categorize(raw),
			})
		}
	}
	return links
}

func trimURL(raw string) string {
	trimmed := strings.TrimRight(raw, trailingPunct)
	if strings.HasSuffix(trimmed, ")") && !strings.Contains(trimmed, "(") {
		trimmed = strings.TrimRight(trimmed, ")"+trailingPunct)
	}
	if trimmed == "" || strings.HasSuffix(trimmed, "://") {
		return raw
	}
	return trimmed
}

// lineText prefers the text before the URL on its line, then the text after.
func lineText(line string, start, end int) string {
	if before := strings.TrimSpace(line[:start]); before != "" {
		return before
	}
	if after := strings.TrimSpace(line[end:]); after != "" {
		return after
	}
	return entity.NoText
}

func lineContext(lines []string, i int) string {
	from := max(0, i-contextRadius)
	to := min(len(lines), i+contextRadius+1)
	ctx := strings.TrimSpace(strings.Join(lines[from:to], " "))
	if ctx == "" {
		return entity.NoContext
	}
	return ctx
}
