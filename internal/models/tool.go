package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ToolTypeBrowser      = "browser"
	ToolTypeDownloadable = "downloadable"
)

type Tool struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	Category   string             `json:"category" bson:"category"`
	About      string             `json:"about" bson:"about"`
	Keywords   []string           `json:"keywords" bson:"keywords"`
	LogoURL    string             `json:"logo_url" bson:"logo_url"`
	WebsiteURL string             `json:"website_url" bson:"website_url"`
	LikeCount  int                `json:"like_count" bson:"like_count"`
	SaveCount  int                `json:"save_count" bson:"save_count"`
	ToolType   string             `json:"tool_type" bson:"tool_type"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	CreatedAt  primitive.DateTime `json:"created_at" bson:"created_at"`
}

// Popularity is the combined like/save signal used as the final ranking
// tiebreak everywhere results are presented.
func (t *Tool) Popularity() int {
	return t.LikeCount + t.SaveCount
}

// ToolResult is the projection of a Tool returned to API callers.
type ToolResult struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Category   string             `json:"category"`
	About      string             `json:"about"`
	Keywords   []string           `json:"keywords"`
	LogoURL    string             `json:"logo_url"`
	WebsiteURL string             `json:"website_url"`
	LikeCount  int                `json:"like_count"`
	SaveCount  int                `json:"save_count"`
	ToolType   string             `json:"tool_type"`
}

func (t *Tool) Result() ToolResult {
	return ToolResult{
		ID:         t.ID,
		Title:      t.Title,
		Category:   t.Category,
		About:      t.About,
		Keywords:   t.Keywords,
		LogoURL:    t.LogoURL,
		WebsiteURL: t.WebsiteURL,
		LikeCount:  t.LikeCount,
		SaveCount:  t.SaveCount,
		ToolType:   t.ToolType,
	}
}

func (r *ToolResult) Popularity() int {
	return r.LikeCount + r.SaveCount
}
