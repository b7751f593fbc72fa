package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"toolscout/internal/metrics"
	"toolscout/internal/models"
)

// ClassifyFunc is the external intent classifier. Implementations must honor
// context cancellation; a nil or failing classifier triggers the rule-based
// fallback.
type ClassifyFunc func(ctx context.Context, message string) (*models.SearchIntent, error)

type IntentService interface {
	ExtractIntent(ctx context.Context, message string) *models.SearchIntent
}

type intentService struct {
	classify ClassifyFunc
}

func NewIntentService() IntentService {
	return &intentService{classify: LLMClassifyIntent}
}

// NewIntentServiceWithClassifier injects a custom classifier, used in tests
// and when the default provider is not configured.
func NewIntentServiceWithClassifier(classify ClassifyFunc) IntentService {
	return &intentService{classify: classify}
}

// ExtractIntent never fails: classifier errors are logged and replaced by the
// deterministic rule cascade.
func (s *intentService) ExtractIntent(ctx context.Context, message string) *models.SearchIntent {
	if s.classify != nil {
		intent, err := s.classify(ctx, message)
		if err == nil && intent != nil {
			log.Debug().Str("intent", string(intent.Intent)).Strs("keywords", intent.Keywords).Msg("Intent classified by LLM")
			return intent
		}
		if err != nil {
			log.Warn().Err(err).Msg("Intent classifier unavailable, using fallback rules")
		}
	}
	metrics.LLMFallbackTotal.WithLabelValues("classify").Inc()
	return fallbackIntent(message)
}

var specificToolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*tell\s+me\s+about\s+(.+)$`),
	regexp.MustCompile(`(?i)^\s*what\s+is\s+(.+)$`),
	regexp.MustCompile(`(?i)^\s*show\s+me\s+(.+)$`),
	regexp.MustCompile(`(?i)^\s*i\s+want\s+(.+)$`),
	regexp.MustCompile(`(?i)^\s*find\s+(.+)$`),
}

// fallbackIntent is the deterministic rule cascade; rules are tried in order
// and the first match wins.
func fallbackIntent(message string) *models.SearchIntent {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "all") && strings.Contains(lower, "one") {
		return &models.SearchIntent{
			Intent:   models.IntentCategorySearch,
			Keywords: []string{"all", "in", "one"},
		}
	}

	for _, p := range specificToolPatterns {
		if m := p.FindStringSubmatch(message); m != nil {
			return &models.SearchIntent{
				Intent:         models.IntentSpecificTool,
				Keywords:       []string{strings.TrimSpace(m[1])},
				IsSpecificTool: true,
			}
		}
	}

	if strings.Contains(lower, "image") && (strings.Contains(lower, "generator") || strings.Contains(lower, "generation")) {
		return &models.SearchIntent{
			Intent:   models.IntentGeneralSearch,
			Keywords: []string{"image", "generator", "art", "creative"},
		}
	}

	var keywords []string
	for _, word := range strings.Fields(lower) {
		if len(word) > 2 {
			keywords = append(keywords, word)
		}
	}
	if keywords == nil {
		keywords = []string{}
	}

	return &models.SearchIntent{
		Intent:   models.IntentGeneralSearch,
		Keywords: keywords,
	}
}
