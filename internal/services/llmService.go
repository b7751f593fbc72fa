package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"toolscout/internal/models"
)

var apiKey = os.Getenv("API_KEY")

// External calls get a hard deadline; on expiry the caller falls back to the
// deterministic path instead of retrying.
const llmTimeout = 2 * time.Second

const intentInstructions = `You are an intent classifier for an AI-tool discovery directory.
Classify the user message into exactly one intent:
- "specific_tool": the user asks about one named tool. Example: "tell me about Notion" -> {"intent":"specific_tool","keywords":["Notion"],"isSpecificTool":true}
- "category_search": the user wants a broad, umbrella solution. Example: "I need an all in one productivity platform" -> {"intent":"category_search","keywords":["all","in","one","productivity"],"isSpecificTool":false}
- "general_search": anything else. Example: "something to generate images" -> {"intent":"general_search","keywords":["generate","images"],"isSpecificTool":false}

Return ONLY a JSON object {"intent": string, "keywords": [string], "isSpecificTool": bool} with no additional text or markdown formatting.`

func newLLM(ctx context.Context) (llms.Model, error) {
	if apiKey == "" {
		return nil, errors.New("missing api key")
	}

	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel("gemini-2.5-flash"))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI LLM: %w", err)
	}
	return llm, nil
}

// stripJSONFences removes markdown code fences the model sometimes wraps
// around structured output.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// LLMClassifyIntent asks the external classifier for a structured intent.
// Missing or malformed fields degrade to general_search / empty keywords.
func LLMClassifyIntent(ctx context.Context, message string) (*models.SearchIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	llm, err := newLLM(ctx)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("%s\n\nUser message: %s", intentInstructions, message)
	raw, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to classify intent: %w", err)
	}

	var parsed struct {
		Intent         string   `json:"intent"`
		Keywords       []string `json:"keywords"`
		IsSpecificTool bool     `json:"isSpecificTool"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse intent response as JSON: %w", err)
	}

	intent := models.Intent(parsed.Intent)
	switch intent {
	case models.IntentSpecificTool, models.IntentCategorySearch, models.IntentGeneralSearch:
	default:
		intent = models.IntentGeneralSearch
	}

	keywords := parsed.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return &models.SearchIntent{
		Intent:         intent,
		Keywords:       keywords,
		IsSpecificTool: intent == models.IntentSpecificTool,
	}, nil
}

// LLMComposeAnswer asks the external generator for a conversational answer
// covering the ranked tools.
func LLMComposeAnswer(ctx context.Context, message string, tools []models.ToolResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	llm, err := newLLM(ctx)
	if err != nil {
		return "", err
	}

	var listing strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&listing, "- %s: %s (%d likes, %d saves)\n", t.Title, t.About, t.LikeCount, t.SaveCount)
	}

	prompt := fmt.Sprintf(
		"You are a friendly assistant for an AI-tool discovery directory. "+
			"Answer the user's message using only the tools listed below. Keep it short and conversational.\n\n"+
			"User message: %s\n\nTools:\n%s",
		message,
		listing.String(),
	)

	answer, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("empty answer from LLM")
	}
	return answer, nil
}
