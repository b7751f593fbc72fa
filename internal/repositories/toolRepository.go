package repositories

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"toolscout/internal/database"
	"toolscout/internal/models"
	"toolscout/internal/utils"
)

type ToolRepository interface {
	Find(ctx context.Context, filter bson.M, limit, page int64) ([]models.Tool, error)
	FindOne(ctx context.Context, filter bson.M) (*models.Tool, error)
	FindByPopularity(ctx context.Context, filter bson.M, limit, page int64) ([]models.Tool, error)
	TopByCategory(ctx context.Context, category string, excludeID primitive.ObjectID, limit int64) ([]models.Tool, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type toolRepository struct {
	db database.Service
}

func NewToolRepository(db database.Service) ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Find(ctx context.Context, filter bson.M, limit, page int64) ([]models.Tool, error) {
	queryType := "find"
	repository := "tool"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection := r.db.Client().Database(database.Name).Collection("tools")
	opts := options.Find()
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	if page > 1 {
		opts = opts.SetSkip((page - 1) * limit)
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to retrieve tools: %w", err)
	}
	defer cursor.Close(ctx)

	var tools []models.Tool
	if err := cursor.All(ctx, &tools); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding tools: %w", err)
	}
	return tools, nil
}

func (r *toolRepository) FindOne(ctx context.Context, filter bson.M) (*models.Tool, error) {
	queryType := "findOne"
	repository := "tool"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var tool models.Tool
	collection := r.db.Client().Database(database.Name).Collection("tools")
	err := collection.FindOne(ctx, filter).Decode(&tool)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err
	}
	return &tool, nil
}

// FindByPopularity returns matching tools sorted by likeCount+saveCount
// descending, computed server-side.
func (r *toolRepository) FindByPopularity(ctx context.Context, filter bson.M, limit, page int64) ([]models.Tool, error) {
	queryType := "findByPopularity"
	repository := "tool"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	skip := int64(0)
	if page > 1 {
		skip = (page - 1) * limit
	}

	pipeline := []bson.M{
		{"$match": filter},
		{"$addFields": bson.M{"popularity": bson.M{"$add": []string{"$like_count", "$save_count"}}}},
		{"$sort": bson.M{"popularity": -1, "_id": 1}},
		{"$skip": skip},
		{"$limit": limit},
	}

	collection := r.db.Client().Database(database.Name).Collection("tools")
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to retrieve tools by popularity: %w", err)
	}
	defer cursor.Close(ctx)

	var tools []models.Tool
	if err := cursor.All(ctx, &tools); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding tools: %w", err)
	}
	return tools, nil
}

// TopByCategory returns the most popular active tools sharing a category,
// excluding the given id.
func (r *toolRepository) TopByCategory(ctx context.Context, category string, excludeID primitive.ObjectID, limit int64) ([]models.Tool, error) {
	filter := bson.M{
		"category":  category,
		"is_active": true,
		"_id":       bson.M{"$ne": excludeID},
	}
	return r.FindByPopularity(ctx, filter, limit, 1)
}

func (r *toolRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	queryType := "distinctCategories"
	repository := "tool"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection := r.db.Client().Database(database.Name).Collection("tools")
	values, err := collection.Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to enumerate categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
