package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"toolscout/internal/models"
)

func failingGenerator(ctx context.Context, message string, tools []models.ToolResult) (string, error) {
	return "", errors.New("generator unavailable")
}

func sampleResults() []models.ToolResult {
	return []models.ToolResult{
		{Title: "Notion", Category: "Productivity", About: "Workspace for notes", LikeCount: 50, SaveCount: 30},
		{Title: "Todoist", Category: "Productivity", About: "Task manager", LikeCount: 20, SaveCount: 10},
	}
}

func TestComposeUsesGeneratorWhenAvailable(t *testing.T) {
	svc := NewResponseServiceWithGenerator(func(ctx context.Context, message string, tools []models.ToolResult) (string, error) {
		return "  Here you go!  ", nil
	})

	answer := svc.Compose(context.Background(), "find notion", sampleResults(), &models.SearchIntent{Intent: models.IntentSpecificTool, IsSpecificTool: true})
	assert.Equal(t, "Here you go!", answer)
}

func TestComposeFallbackSpecificToolWithSiblings(t *testing.T) {
	svc := NewResponseServiceWithGenerator(failingGenerator)
	intent := &models.SearchIntent{Intent: models.IntentSpecificTool, Keywords: []string{"Notion"}, IsSpecificTool: true}

	answer := svc.Compose(context.Background(), "tell me about Notion", sampleResults(), intent)

	assert.Contains(t, answer, "**Notion**")
	assert.Contains(t, answer, "Similar tools from the same category")
	assert.Contains(t, answer, "Todoist")
}

func TestComposeFallbackSpecificToolSingle(t *testing.T) {
	svc := NewResponseServiceWithGenerator(failingGenerator)
	intent := &models.SearchIntent{Intent: models.IntentSpecificTool, Keywords: []string{"Notion"}, IsSpecificTool: true}

	answer := svc.Compose(context.Background(), "tell me about Notion", sampleResults()[:1], intent)

	assert.Contains(t, answer, "**Notion**")
	assert.NotContains(t, answer, "Similar tools")
}

func TestComposeFallbackGeneralList(t *testing.T) {
	svc := NewResponseServiceWithGenerator(failingGenerator)
	intent := &models.SearchIntent{Intent: models.IntentGeneralSearch, Keywords: []string{"notes"}}

	answer := svc.Compose(context.Background(), "apps for notes", sampleResults(), intent)

	assert.Contains(t, answer, "1. **Notion**")
	assert.Contains(t, answer, "2. **Todoist**")
	assert.Contains(t, answer, "50 likes")
	assert.Contains(t, answer, "Productivity category")
}

func TestComposeZeroToolsSpecificAsk(t *testing.T) {
	svc := NewResponseServiceWithGenerator(failingGenerator)
	intent := &models.SearchIntent{Intent: models.IntentSpecificTool, Keywords: []string{"SuperRareApp"}, IsSpecificTool: true}

	answer := svc.Compose(context.Background(), "tell me about SuperRareApp", nil, intent)

	assert.Contains(t, answer, "SuperRareApp")
	assert.Contains(t, answer, "coming soon")
}

func TestComposeZeroToolsCategoryAsk(t *testing.T) {
	svc := NewResponseServiceWithGenerator(failingGenerator)
	intent := &models.SearchIntent{Intent: models.IntentGeneralSearch, Keywords: []string{"underwater", "basket", "weaving"}}

	answer := svc.Compose(context.Background(), "ai tools for underwater basket weaving", nil, intent)

	assert.Contains(t, answer, "underwater basket weaving")
	assert.Contains(t, answer, "coming soon")
}

func TestComposeZeroToolsGeneric(t *testing.T) {
	svc := NewResponseServiceWithGenerator(failingGenerator)
	intent := &models.SearchIntent{Intent: models.IntentGeneralSearch, Keywords: []string{"qwzqwz"}}

	answer := svc.Compose(context.Background(), "qwzqwz", nil, intent)

	assert.Contains(t, answer, "couldn't find a match")
}

func TestExtractRequestedName(t *testing.T) {
	tests := []struct {
		message    string
		intent     *models.SearchIntent
		wantName   string
		isCategory bool
	}{
		{"tell me about Notion", nil, "Notion", false},
		{"ai tools for marketing", nil, "marketing", true},
		{"tools for video editing", nil, "video editing", true},
		{"xyz123nonexistent tool", nil, "xyz123nonexistent", false},
		{"whatever", &models.SearchIntent{IsSpecificTool: true, Keywords: []string{"Canva"}}, "Canva", false},
		{"no pattern here at", nil, "", false},
	}
	for _, tt := range tests {
		name, isCategory := extractRequestedName(tt.message, tt.intent)
		assert.Equal(t, tt.wantName, name, "message %q", tt.message)
		assert.Equal(t, tt.isCategory, isCategory, "message %q", tt.message)
	}
}
