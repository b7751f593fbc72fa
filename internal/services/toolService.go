package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"toolscout/internal/models"
	"toolscout/internal/repositories"
)

// ToolService backs the directory browse endpoints.
type ToolService interface {
	GetTools(ctx context.Context, category string, limit, page int64) ([]models.ToolResult, error)
	GetToolByID(ctx context.Context, id primitive.ObjectID) (*models.ToolResult, error)
	GetCategories(ctx context.Context) ([]string, error)
}

type toolServiceImpl struct {
	toolRepo repositories.ToolRepository
}

func NewToolService(toolRepo repositories.ToolRepository) ToolService {
	return &toolServiceImpl{toolRepo: toolRepo}
}

func (s *toolServiceImpl) GetTools(ctx context.Context, category string, limit, page int64) ([]models.ToolResult, error) {
	filter := bson.M{"is_active": true}
	if category != "" {
		filter["category"] = bson.M{"$regex": "^" + category + "$", "$options": "i"}
	}

	tools, err := s.toolRepo.FindByPopularity(ctx, filter, limit, page)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Error listing tools")
		return nil, err
	}

	results := make([]models.ToolResult, 0, len(tools))
	for i := range tools {
		results = append(results, tools[i].Result())
	}
	log.Debug().Str("category", category).Int("count", len(results)).Msg("Successfully listed tools")
	return results, nil
}

func (s *toolServiceImpl) GetToolByID(ctx context.Context, id primitive.ObjectID) (*models.ToolResult, error) {
	tool, err := s.toolRepo.FindOne(ctx, bson.M{"_id": id, "is_active": true})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn().Str("toolID", id.Hex()).Msg("Tool not found")
			return nil, fmt.Errorf("tool not found")
		}
		log.Error().Err(err).Str("toolID", id.Hex()).Msg("Error finding tool by ID")
		return nil, fmt.Errorf("failed to retrieve tool")
	}
	result := tool.Result()
	return &result, nil
}

func (s *toolServiceImpl) GetCategories(ctx context.Context) ([]string, error) {
	categories, err := s.toolRepo.DistinctCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error listing categories")
		return nil, err
	}
	return categories, nil
}
