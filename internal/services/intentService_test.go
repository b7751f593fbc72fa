package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"toolscout/internal/models"
)

func failingClassifier(ctx context.Context, message string) (*models.SearchIntent, error) {
	return nil, errors.New("classifier unavailable")
}

func TestExtractIntentUsesClassifierWhenAvailable(t *testing.T) {
	want := &models.SearchIntent{
		Intent:         models.IntentSpecificTool,
		Keywords:       []string{"Canva"},
		IsSpecificTool: true,
	}
	svc := NewIntentServiceWithClassifier(func(ctx context.Context, message string) (*models.SearchIntent, error) {
		return want, nil
	})

	got := svc.ExtractIntent(context.Background(), "what is canva")
	assert.Equal(t, want, got)
}

func TestExtractIntentFallbackAllInOne(t *testing.T) {
	svc := NewIntentServiceWithClassifier(failingClassifier)

	intent := svc.ExtractIntent(context.Background(), "I need ALL my work in ONE place")
	assert.Equal(t, models.IntentCategorySearch, intent.Intent)
	assert.Equal(t, []string{"all", "in", "one"}, intent.Keywords)
	assert.False(t, intent.IsSpecificTool)
}

func TestExtractIntentFallbackSpecificToolPatterns(t *testing.T) {
	svc := NewIntentServiceWithClassifier(failingClassifier)

	tests := []struct {
		message string
		keyword string
	}{
		{"tell me about Notion", "Notion"},
		{"What is Midjourney", "Midjourney"},
		{"show me Figma", "Figma"},
		{"i want Grammarly", "Grammarly"},
		{"find Canva ", "Canva"},
	}
	for _, tt := range tests {
		intent := svc.ExtractIntent(context.Background(), tt.message)
		assert.Equal(t, models.IntentSpecificTool, intent.Intent, "message %q", tt.message)
		assert.Equal(t, []string{tt.keyword}, intent.Keywords)
		assert.True(t, intent.IsSpecificTool)
	}
}

func TestExtractIntentFallbackImageGenerator(t *testing.T) {
	svc := NewIntentServiceWithClassifier(failingClassifier)

	intent := svc.ExtractIntent(context.Background(), "best image generation model")
	assert.Equal(t, models.IntentGeneralSearch, intent.Intent)
	assert.Equal(t, []string{"image", "generator", "art", "creative"}, intent.Keywords)
}

func TestExtractIntentFallbackDefaultKeepsWordOrder(t *testing.T) {
	svc := NewIntentServiceWithClassifier(failingClassifier)

	intent := svc.ExtractIntent(context.Background(), "an app for writing writing notes")
	assert.Equal(t, models.IntentGeneralSearch, intent.Intent)
	// Words of length > 2, lowercased, original order, duplicates kept.
	assert.Equal(t, []string{"app", "for", "writing", "writing", "notes"}, intent.Keywords)
}

func TestExtractIntentNeverReturnsInvalidIntent(t *testing.T) {
	svc := NewIntentServiceWithClassifier(failingClassifier)

	for _, message := range []string{"", "a b", "??", "tell me about "} {
		intent := svc.ExtractIntent(context.Background(), message)
		assert.NotNil(t, intent)
		assert.Contains(t, []models.Intent{
			models.IntentSpecificTool,
			models.IntentCategorySearch,
			models.IntentGeneralSearch,
		}, intent.Intent)
		assert.NotNil(t, intent.Keywords)
	}
}

func TestStripJSONFences(t *testing.T) {
	raw := "```json\n{\"intent\":\"general_search\"}\n```"
	assert.Equal(t, `{"intent":"general_search"}`, stripJSONFences(raw))
}
