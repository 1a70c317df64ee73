package prompts

import (
	"bytes"
	"strings"
	"text/template"
)

type LinkExtractionPromptData struct {
	Content string
}

var linkExtractionTmpl = template.Must(template.New("link_extraction").Parse(linkExtractionUserTemplate))

// GenerateLinkExtractionPrompt renders the user message for the semantic
// link strategy. Content is inserted verbatim; truncation is the caller's job.
func GenerateLinkExtractionPrompt(content string) (string, error) {
	var buf bytes.Buffer
	if err := linkExtractionTmpl.Execute(&buf, LinkExtractionPromptData{Content: content}); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func SystemPrompt() string {
	return strings.TrimSpace(LinkExtractionSystemPrompt)
}
