package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/metrics"
)

// ChatService asks the chat model with web search grounding enabled.
type ChatService struct {
	client  *GeminiClient
	model   string
	metrics *metrics.Metrics
}

func NewChatService(client *GeminiClient, model string, m *metrics.Metrics) *ChatService {
	return &ChatService{client: client, model: model, metrics: m}
}

// Ask sends one prompt, optionally with an inline file, and returns the answer.
// It never fails: any error is logged and turned into a fallback answer.
func (s *ChatService) Ask(ctx context.Context, prompt string, lang domain.Language, file *domain.InlineFile) domain.Answer {
	start := time.Now()

	resp, err := s.client.GenerateContent(ctx, s.model, BuildChatRequest(prompt, lang, file))
	if err != nil {
		slog.Error("chat request failed", "model", s.model, "lang", lang, "error", err)
		s.metrics.RecordChat(metrics.OutcomeFallback, time.Since(start), 0)
		return domain.FallbackAnswer()
	}

	answer := ParseChatResponse(resp)
	s.metrics.RecordChat(metrics.OutcomeOK, time.Since(start), len(answer.Sources))
	s.metrics.RecordTokens(answer.Usage.PromptTokens, answer.Usage.CompletionTokens)

	slog.Info("chat answered",
		"model", s.model,
		"lang", lang,
		"with_file", file != nil,
		"sources", len(answer.Sources),
		"prompt_tokens", answer.Usage.PromptTokens,
		"completion_tokens", answer.Usage.CompletionTokens,
	)
	return answer
}

// BuildChatRequest assembles the request body. The inline part, when present,
// precedes the text part.
func BuildChatRequest(prompt string, lang domain.Language, file *domain.InlineFile) *GenerateContentRequest {
	parts := make([]Part, 0, 2)
	if file != nil {
		parts = append(parts, Part{InlineData: &Blob{
			Data:     file.Payload(),
			MimeType: file.MimeType,
		}})
	}
	parts = append(parts, Part{Text: prompt})

	return &GenerateContentRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: SystemInstruction(lang)}}},
		Contents:          []Content{{Role: "user", Parts: parts}},
		Tools:             []Tool{{GoogleSearch: &struct{}{}}},
	}
}

// ParseChatResponse extracts the answer text, sources and usage of the first candidate.
func ParseChatResponse(resp *GenerateContentResponse) domain.Answer {
	answer := domain.Answer{
		Kind: domain.AnswerGenerated,
		Usage: domain.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
		},
	}

	if len(resp.Candidates) == 0 {
		answer.Text = domain.NoResponseText
		return answer
	}
	candidate := resp.Candidates[0]

	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		if p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	answer.Text = sb.String()
	if answer.Text == "" {
		answer.Text = domain.NoResponseText
	}

	if candidate.GroundingMetadata != nil {
		answer.Sources = collectSources(candidate.GroundingMetadata.GroundingChunks)
	}
	return answer
}

// collectSources keeps web chunks that carry a URI, first occurrence wins.
func collectSources(chunks []GroundingChunk) []domain.GroundingSource {
	var sources []domain.GroundingSource
	seen := make(map[string]struct{}, len(chunks))
	for _, c := range chunks {
		if c.Web == nil || c.Web.URI == "" {
			continue
		}
		if _, ok := seen[c.Web.URI]; ok {
			continue
		}
		seen[c.Web.URI] = struct{}{}
		sources = append(sources, domain.GroundingSource{Title: c.Web.Title, URI: c.Web.URI})
	}
	return sources
}
