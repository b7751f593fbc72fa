package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"toolscout/internal/metrics"
	"toolscout/internal/models"
)

// GenerateFunc is the external answer generator. Failures and empty output
// trigger the template fallback.
type GenerateFunc func(ctx context.Context, message string, tools []models.ToolResult) (string, error)

type ResponseService interface {
	Compose(ctx context.Context, message string, tools []models.ToolResult, intent *models.SearchIntent) string
}

type responseService struct {
	generate GenerateFunc
}

func NewResponseService() ResponseService {
	return &responseService{generate: LLMComposeAnswer}
}

// NewResponseServiceWithGenerator injects a custom generator, used in tests.
func NewResponseServiceWithGenerator(generate GenerateFunc) ResponseService {
	return &responseService{generate: generate}
}

// Compose never fails; any generator problem degrades to templates, and any
// template inconsistency degrades to the zero-tools message.
func (s *responseService) Compose(ctx context.Context, message string, tools []models.ToolResult, intent *models.SearchIntent) string {
	if len(tools) > 0 && s.generate != nil {
		answer, err := s.generate(ctx, message, tools)
		if err == nil && strings.TrimSpace(answer) != "" {
			return strings.TrimSpace(answer)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Answer generator unavailable, using template fallback")
		}
		metrics.LLMFallbackTotal.WithLabelValues("generate").Inc()
	}
	return fallbackCompose(message, tools, intent)
}

func fallbackCompose(message string, tools []models.ToolResult, intent *models.SearchIntent) string {
	if len(tools) == 0 {
		return composeNotFound(message, intent)
	}

	if intent != nil && intent.IsSpecificTool {
		return composeSpecificTool(tools)
	}
	return composeToolList(tools)
}

func composeNotFound(message string, intent *models.SearchIntent) string {
	name, isCategory := extractRequestedName(message, intent)
	switch {
	case name != "" && isCategory:
		return fmt.Sprintf("We don't have %s tools in our collection yet, but they're coming soon! Check back shortly or browse our existing categories.", name)
	case name != "":
		return fmt.Sprintf("%s is not in our database yet, but it's coming soon! In the meantime, try browsing our categories for a similar tool.", name)
	default:
		return "I couldn't find a match for that. Try asking about a specific tool, for example \"tell me about Notion\" or \"find Canva\"."
	}
}

func composeSpecificTool(tools []models.ToolResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**: %s", tools[0].Title, tools[0].About)

	if len(tools) > 1 {
		b.WriteString("\n\nSimilar tools from the same category:\n")
		for i, t := range tools[1:] {
			fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, t.Title, t.About)
		}
	}
	return strings.TrimSpace(b.String())
}

func composeToolList(tools []models.ToolResult) string {
	var b strings.Builder
	b.WriteString("Here are the top tools I found for you:\n\n")
	for i, t := range tools {
		fmt.Fprintf(&b, "%d. **%s** (%s): %s | %d likes, %d saves | [View tool]\n",
			i+1, t.Title, t.Category, t.About, t.LikeCount, t.SaveCount)
	}
	fmt.Fprintf(&b, "\nYou can browse the %s category for more options.", tools[0].Category)
	return b.String()
}
