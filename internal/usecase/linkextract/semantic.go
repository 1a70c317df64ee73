package linkextract

import (
	"context"
	"encoding/json"
	"strings"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/prompts"
)

const (
	semanticContentLimit = 4000
	semanticTemperature  = 0.1
	semanticMaxTokens    = 2000
)

type semanticLink struct {
	URL     string `json:"url"`
	Text    string `json:"text"`
	Context string `json:"context"`
	Type    string `json:"type"`
}

type semanticStrategy struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func (s *semanticStrategy) name() string { return "semantic" }

// extract never fails: a missing model, a failed call or an unparseable
// answer all contribute zero links.
func (s *semanticStrategy) extract(ctx context.Context, content string) []entity.ExtractedLink {
	if s.llm == nil {
		return nil
	}

	prompt, err := prompts.GenerateLinkExtractionPrompt(truncateRunes(content, semanticContentLimit))
	if err != nil {
		s.logger.Warn("Failed to render link extraction prompt", "error", err)
		return nil
	}

	resp, err := s.llm.Chat(ctx, output.ChatRequest{
		Messages: []output.Message{
			{Role: output.RoleSystem, Content: prompts.SystemPrompt()},
			{Role: output.RoleUser, Content: prompt},
		},
		Temperature: semanticTemperature,
		MaxTokens:   semanticMaxTokens,
	})
	if err != nil {
		s.logger.Warn("Semantic link extraction failed", "error", err)
		return nil
	}

	raw, err := parseLinkArray(resp.Message.Content)
	if err != nil {
		s.logger.Warn("Failed to parse semantic links", "error", err)
		return nil
	}

	links := make([]entity.ExtractedLink, 0, len(raw))
	for _, r := range raw {
		u := strings.TrimSpace(r.URL)
		if !isValidURL(u) {
			continue
		}
		links = append(links, entity.ExtractedLink{
			URL:     u,
			Text:    orSentinel(r.Text, entity.NoText),
			Context: orSentinel(r.Context, entity.NoContext),
			Type:    Categorize(u),
		})
	}
	return links
}

// parseLinkArray takes the JSON array between the first '[' and the last ']'
// so that prose or code fences around the answer are tolerated.
func parseLinkArray(response string) ([]semanticLink, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end < start {
		return nil, entity.NewError(entity.KindParse, "no JSON array found in response", nil)
	}

	var links []semanticLink
	if err := json.Unmarshal([]byte(response[start:end+1]), &links); err != nil {
		return nil, entity.NewError(entity.KindParse, "failed to parse JSON", err)
	}
	return links, nil
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

func orSentinel(s, sentinel string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return sentinel
}
