package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"toolscout/internal/metrics"
	"toolscout/internal/models"
	"toolscout/internal/repositories"
)

var (
	aiToolsForRe = regexp.MustCompile(`(?i)\bai\s+tools?\s+for\s+(.+)$`)
	toolsForRe   = regexp.MustCompile(`(?i)\btools?\s+for\s+(.+)$`)
	nameToolsRe  = regexp.MustCompile(`(?i)^(.*?)\s+tools?$`)
)

// extractRequestedName pulls a human-readable tool or category name out of a
// query that matched nothing. The second return value reports whether the
// name refers to a category rather than a single tool.
func extractRequestedName(message string, intent *models.SearchIntent) (string, bool) {
	if intent != nil && intent.IsSpecificTool && len(intent.Keywords) > 0 {
		return strings.TrimSpace(intent.Keywords[0]), false
	}

	for _, p := range specificToolPatterns {
		if m := p.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1]), false
		}
	}
	if m := aiToolsForRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := toolsForRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := nameToolsRe.FindStringSubmatch(message); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1]), false
	}
	return "", false
}

// MissingRequestService records queries that matched zero tools so product
// can see what users asked for. It never blocks or fails the response.
type MissingRequestService interface {
	Log(ctx context.Context, message string, intent *models.SearchIntent)
	List(ctx context.Context, limit int64) ([]models.MissingRequest, error)
}

type missingRequestService struct {
	missingRepo repositories.MissingRequestRepository
}

func NewMissingRequestService(missingRepo repositories.MissingRequestRepository) MissingRequestService {
	return &missingRequestService{missingRepo: missingRepo}
}

func (s *missingRequestService) Log(ctx context.Context, message string, intent *models.SearchIntent) {
	name, isCategory := extractRequestedName(message, intent)
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(message))
	}

	log.Info().
		Str("requested", name).
		Bool("is_category", isCategory).
		Str("message", message).
		Msg("Missing tool request")
	metrics.MissingRequestsTotal.Inc()

	if err := s.missingRepo.Upsert(ctx, name, message); err != nil {
		// Recording is best-effort; the response must not depend on it.
		log.Warn().Err(err).Str("requested", name).Msg("Failed to record missing request")
	}
}

func (s *missingRequestService) List(ctx context.Context, limit int64) ([]models.MissingRequest, error) {
	return s.missingRepo.FindAll(ctx, limit)
}
