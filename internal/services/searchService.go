package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"toolscout/internal/models"
	"toolscout/internal/repositories"
)

const (
	maxResults     = 5
	candidateLimit = 200
)

// Generic terms stripped from keyword lists before relevance matching, to
// keep "ai tool" style queries from matching everything.
var stopKeywords = map[string]struct{}{
	"ai":           {},
	"tool":         {},
	"tools":        {},
	"automation":   {},
	"productivity": {},
	"software":     {},
	"assistant":    {},
	"platform":     {},
	"app":          {},
	"application":  {},
}

var (
	genericTitleRe  = regexp.MustCompile(`^(ai|tool|software|assistant|platform)$`)
	genericLeadRe   = regexp.MustCompile(`^(ai|tool|software|assistant|platform)\b`)
	creativeBoostRe = regexp.MustCompile(`image|generator|art|design|creative`)
)

// SearchService ranks active tools for a classified query. Store failures are
// absorbed: callers see an empty list, never an error.
type SearchService interface {
	Search(ctx context.Context, keywords []string, isSpecificTool bool) ([]models.ToolResult, bool)
}

type searchService struct {
	toolRepo repositories.ToolRepository
}

func NewSearchService(toolRepo repositories.ToolRepository) SearchService {
	return &searchService{toolRepo: toolRepo}
}

// Search dispatches to one of three mutually exclusive strategies. The second
// return value reports whether the first result is an exact tool match.
func (s *searchService) Search(ctx context.Context, keywords []string, isSpecificTool bool) ([]models.ToolResult, bool) {
	kws := normalizeKeywords(keywords)
	if len(kws) == 0 {
		return nil, false
	}

	if isSpecificTool {
		return s.searchSpecificTool(ctx, kws)
	}
	if containsKeyword(kws, "all") && containsKeyword(kws, "one") {
		return s.searchByCategory(ctx, kws), false
	}
	return s.searchGeneral(ctx, kws), false
}

// searchSpecificTool finds the single best title match and pads the list with
// up to four popular tools from the same category.
func (s *searchService) searchSpecificTool(ctx context.Context, keywords []string) ([]models.ToolResult, bool) {
	filter := activeRegexOr([]string{"title"}, keywords)
	candidates, err := s.toolRepo.Find(ctx, filter, candidateLimit, 1)
	if err != nil {
		log.Error().Err(err).Strs("keywords", keywords).Msg("Specific tool lookup failed")
		return nil, false
	}

	var best *models.Tool
	bestScore := 0
	for i := range candidates {
		t := &candidates[i]
		if !t.IsActive {
			continue
		}
		score := scoreTitleMatch(t.Title, keywords)
		if score == 0 {
			continue
		}
		score += t.Popularity()
		if best == nil || score > bestScore {
			best = t
			bestScore = score
		}
	}

	if best == nil {
		return nil, false
	}

	results := []models.ToolResult{best.Result()}

	siblings, err := s.toolRepo.TopByCategory(ctx, best.Category, best.ID, maxResults-1)
	if err != nil {
		log.Error().Err(err).Str("category", best.Category).Msg("Category sibling lookup failed")
		return results, true
	}
	for i := range siblings {
		results = append(results, siblings[i].Result())
	}
	return results, true
}

// scoreTitleMatch scores one title against the keyword list. Each keyword
// contributes its highest matching tier: exact 100, word boundary 80,
// whitespace-stripped 70, substring 50.
func scoreTitleMatch(title string, keywords []string) int {
	lower := strings.ToLower(title)
	squashed := stripSpaces(lower)

	score := 0
	for _, kw := range keywords {
		switch {
		case lower == kw:
			score += 100
		case wordBoundaryMatch(lower, kw):
			score += 80
		case squashed != lower && strings.Contains(squashed, stripSpaces(kw)):
			score += 70
		case strings.Contains(lower, kw):
			score += 50
		}
	}
	return score
}

// searchByCategory handles broad "all in one" style requests by matching
// category labels against the non-generic keywords.
func (s *searchService) searchByCategory(ctx context.Context, keywords []string) []models.ToolResult {
	categoryKeywords := filterStopKeywords(keywords)
	if len(categoryKeywords) == 0 {
		return nil
	}
	phrase := strings.Join(categoryKeywords, " ")

	filter := activeRegexOr([]string{"category"}, categoryKeywords)
	candidates, err := s.toolRepo.Find(ctx, filter, candidateLimit, 1)
	if err != nil {
		log.Error().Err(err).Strs("keywords", categoryKeywords).Msg("Category search failed")
		return nil
	}

	var scored []scoredTool
	for i := range candidates {
		t := &candidates[i]
		if !t.IsActive {
			continue
		}
		category := strings.ToLower(t.Category)

		score := 0
		switch {
		case strings.Contains(category, phrase):
			score += 50
		case containsAnyKeyword(category, categoryKeywords):
			score += 30
		default:
			continue
		}

		if containsAnyKeyword(strings.ToLower(t.About), categoryKeywords) {
			score += 15
		}
		overlap := keywordOverlap(t.Keywords, categoryKeywords)
		if overlap >= 1 {
			score += 10
		}
		if overlap > 1 {
			score += 10
		}

		scored = append(scored, scoredTool{tool: t, score: score})
	}

	top := takeTopScored(scored, maxResults)
	sortByPopularity(top)
	return top
}

// searchGeneral is the default multi-field strategy with additive weights,
// penalties for generic titles, and a post-filter that drops candidates whose
// text never mentions a meaningful keyword.
func (s *searchService) searchGeneral(ctx context.Context, keywords []string) []models.ToolResult {
	meaningful := filterStopKeywords(keywords)
	searchKeywords := meaningful
	if len(searchKeywords) == 0 {
		searchKeywords = keywords
	}

	filter := activeRegexOr([]string{"title", "category", "about", "keywords"}, searchKeywords)
	candidates, err := s.toolRepo.Find(ctx, filter, candidateLimit, 1)
	if err != nil {
		log.Error().Err(err).Strs("keywords", searchKeywords).Msg("General search failed")
		return nil
	}

	var scored []scoredTool
	for i := range candidates {
		t := &candidates[i]
		if !t.IsActive {
			continue
		}
		title := strings.ToLower(t.Title)
		category := strings.ToLower(t.Category)
		about := strings.ToLower(t.About)

		score := 0
		matched := false
		if containsAnyKeyword(title, searchKeywords) {
			score += 40
			matched = true
		}
		if containsAnyKeyword(category, searchKeywords) {
			score += 25
			matched = true
		}
		if containsAnyKeyword(about, searchKeywords) {
			score += 15
			matched = true
		}
		overlap := keywordOverlap(t.Keywords, searchKeywords)
		if overlap >= 1 {
			score += 12
			matched = true
		}
		if overlap > 1 {
			score += 10
		}
		if containsKeyword(searchKeywords, title) {
			score += 30
		}
		if genericTitleRe.MatchString(title) {
			score -= 20
		}
		if genericLeadRe.MatchString(about) {
			score -= 15
		}
		if keywordOverlap(t.Keywords, meaningful) > 1 {
			score += 15
		}
		if creativeBoostRe.MatchString(category) {
			score += 20
		}
		if creativeBoostRe.MatchString(about) {
			score += 15
		}
		if creativeBoostRe.MatchString(title) {
			score += 25
		}

		if !matched || score < 10 {
			continue
		}
		scored = append(scored, scoredTool{tool: t, score: score, text: title + " " + category + " " + about})
	}

	sortScored(scored)
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	// Second pass removes false positives that rode in on unrelated field
	// matches: a kept result must score at least 15 and actually mention one
	// of the meaningful keywords.
	required := meaningful
	if len(required) == 0 {
		required = keywords
	}
	var results []models.ToolResult
	hasSpecificTitle := false
	for _, st := range scored {
		if st.score < 15 {
			continue
		}
		if !containsAnyKeyword(st.text, required) {
			continue
		}
		if !genericTitleRe.MatchString(strings.ToLower(st.tool.Title)) {
			hasSpecificTitle = true
		}
		results = append(results, st.tool.Result())
	}

	// A bare generic title ("ai", "tool", ...) only surfaces when nothing
	// better-named survived the filter.
	if hasSpecificTitle {
		kept := results[:0]
		for _, r := range results {
			if !genericTitleRe.MatchString(strings.ToLower(r.Title)) {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	sortByPopularity(results)
	return results
}

type scoredTool struct {
	tool  *models.Tool
	score int
	text  string
}

func sortScored(scored []scoredTool) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].tool.Popularity() > scored[j].tool.Popularity()
	})
}

func takeTopScored(scored []scoredTool, n int) []models.ToolResult {
	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	results := make([]models.ToolResult, 0, len(scored))
	for _, st := range scored {
		results = append(results, st.tool.Result())
	}
	return results
}

func sortByPopularity(results []models.ToolResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Popularity() > results[j].Popularity()
	})
}

// activeRegexOr builds a coarse case-insensitive prefetch filter over active
// documents; authoritative scoring happens in Go.
func activeRegexOr(fields, keywords []string) bson.M {
	var ors []bson.M
	for _, field := range fields {
		for _, kw := range keywords {
			ors = append(ors, bson.M{field: bson.M{"$regex": regexp.QuoteMeta(kw), "$options": "i"}})
		}
	}
	return bson.M{"is_active": true, "$or": ors}
}

func normalizeKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func filterStopKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if _, ok := stopKeywords[kw]; !ok {
			out = append(out, kw)
		}
	}
	return out
}

func containsKeyword(keywords []string, s string) bool {
	for _, kw := range keywords {
		if kw == s {
			return true
		}
	}
	return false
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// keywordOverlap counts tool keywords mentioning any search keyword.
func keywordOverlap(toolKeywords, keywords []string) int {
	count := 0
	for _, tk := range toolKeywords {
		tk = strings.ToLower(tk)
		for _, kw := range keywords {
			if strings.Contains(tk, kw) {
				count++
				break
			}
		}
	}
	return count
}

func wordBoundaryMatch(s, kw string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
