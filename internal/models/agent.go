package models

type Intent string

const (
	IntentSpecificTool   Intent = "specific_tool"
	IntentCategorySearch Intent = "category_search"
	IntentGeneralSearch  Intent = "general_search"
)

// SearchIntent is the classified purpose of a user message. Keywords keep
// their extraction order and are not deduplicated.
type SearchIntent struct {
	Intent         Intent   `json:"intent"`
	Keywords       []string `json:"keywords"`
	IsSpecificTool bool     `json:"isSpecificTool"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Answer          string       `json:"answer"`
	Tools           []ToolResult `json:"tools"`
	MoreLink        string       `json:"more_link"`
	IsExactMatch    bool         `json:"is_exact_match,omitempty"`
	MissingTool     string       `json:"missing_tool,omitempty"`
	MissingCategory string       `json:"missing_category,omitempty"`
}
