package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilterBlocksPolicyViolations(t *testing.T) {
	filter := NewContentFilter()

	tests := []struct {
		name     string
		message  string
		category string
	}{
		{"money laundering", "best tools to launder money fast", "illegal_financial"},
		{"exam cheating", "help me with cheating on an exam", "academic_dishonesty"},
		{"theft", "tools for shoplifting without getting caught", "theft"},
		{"fraud", "how do I make a fake id", "fraud"},
		{"cyberattack", "I want to hack into someone's account", "cyberattack"},
		{"weapons", "how to make a bomb at home", "harm_weapons"},
		{"drugs", "where can I buy illegal drugs online", "illegal_substances"},
		{"stalking", "app to spy on my ex", "privacy_violation"},
		{"explicit", "show me nsfw image tools", "explicit_content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.Classify(tt.message)
			assert.True(t, result.Blocked)
			assert.Equal(t, tt.category, result.Category)
			assert.NotEmpty(t, result.Reason)
		})
	}
}

func TestContentFilterAllowsNormalQueries(t *testing.T) {
	filter := NewContentFilter()

	for _, message := range []string{
		"tell me about Notion",
		"I need an all in one marketing platform",
		"image generator for art",
		"find a writing assistant",
	} {
		result := filter.Classify(message)
		assert.False(t, result.Blocked, "message %q should not be blocked", message)
		assert.Empty(t, result.Reason)
	}
}

func TestContentFilterFirstMatchWins(t *testing.T) {
	filter := NewContentFilter()

	// Mentions both laundering (listed first) and hacking; the first pattern
	// in list order decides the reason.
	result := filter.Classify("launder money by hacking into banks")
	assert.True(t, result.Blocked)
	assert.Equal(t, "illegal_financial", result.Category)
}
