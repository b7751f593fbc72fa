package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"toolscout/internal/metrics"
	"toolscout/internal/models"
	"toolscout/internal/repositories"
)

const defaultMoreLink = "/tools"

// AgentService runs the full assistant pipeline for one message:
// content filter, intent extraction, relevance search, response composition,
// and missing-request recording when nothing matched.
type AgentService struct {
	contentFilter  ContentFilter
	intentService  IntentService
	searchService  SearchService
	response       ResponseService
	missingService MissingRequestService
}

func NewAgentService(toolRepo repositories.ToolRepository, missingRepo repositories.MissingRequestRepository) *AgentService {
	return &AgentService{
		contentFilter:  NewContentFilter(),
		intentService:  NewIntentService(),
		searchService:  NewSearchService(toolRepo),
		response:       NewResponseService(),
		missingService: NewMissingRequestService(missingRepo),
	}
}

// NewAgentServiceWithDeps wires explicit collaborators, used in tests.
func NewAgentServiceWithDeps(
	contentFilter ContentFilter,
	intentService IntentService,
	searchService SearchService,
	response ResponseService,
	missingService MissingRequestService,
) *AgentService {
	return &AgentService{
		contentFilter:  contentFilter,
		intentService:  intentService,
		searchService:  searchService,
		response:       response,
		missingService: missingService,
	}
}

// Handle never returns an error: every failure inside the pipeline degrades
// to a valid response.
func (s *AgentService) Handle(ctx context.Context, message string) *models.ChatResponse {
	if verdict := s.contentFilter.Classify(message); verdict.Blocked {
		log.Info().Str("category", verdict.Category).Msg("Query blocked by content filter")
		metrics.BlockedQueriesTotal.WithLabelValues(verdict.Category).Inc()
		return &models.ChatResponse{
			Answer:   fmt.Sprintf("I cannot help with requests involving %s. Feel free to ask me about any of the tools in our directory instead.", verdict.Reason),
			Tools:    []models.ToolResult{},
			MoreLink: defaultMoreLink,
		}
	}

	intent := s.intentService.ExtractIntent(ctx, message)
	metrics.AgentQueriesTotal.WithLabelValues(string(intent.Intent)).Inc()

	tools, exactMatch := s.searchService.Search(ctx, intent.Keywords, intent.IsSpecificTool)

	resp := &models.ChatResponse{
		Tools:        tools,
		MoreLink:     moreLink(tools),
		IsExactMatch: exactMatch,
	}
	if resp.Tools == nil {
		resp.Tools = []models.ToolResult{}
	}

	if len(tools) == 0 {
		metrics.SearchEmptyTotal.Inc()
		s.missingService.Log(ctx, message, intent)

		if name, isCategory := extractRequestedName(message, intent); name != "" {
			if isCategory {
				resp.MissingCategory = name
			} else {
				resp.MissingTool = name
			}
		}
	}

	resp.Answer = s.response.Compose(ctx, message, tools, intent)
	return resp
}

// moreLink points at the first result's category page, or the generic tools
// listing when there is nothing to anchor on.
func moreLink(tools []models.ToolResult) string {
	if len(tools) == 0 || tools[0].Category == "" {
		return defaultMoreLink
	}
	return defaultMoreLink + "?category=" + url.QueryEscape(strings.ToLower(tools[0].Category))
}
