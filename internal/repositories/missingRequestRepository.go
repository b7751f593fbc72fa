package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"toolscout/internal/database"
	"toolscout/internal/models"
	"toolscout/internal/utils"
)

type MissingRequestRepository interface {
	Upsert(ctx context.Context, name, message string) error
	FindAll(ctx context.Context, limit int64) ([]models.MissingRequest, error)
}

type missingRequestRepository struct {
	db database.Service
}

func NewMissingRequestRepository(db database.Service) MissingRequestRepository {
	return &missingRequestRepository{db: db}
}

// Upsert increments the counter for a missing tool/category name, creating
// the document on first sight.
func (r *missingRequestRepository) Upsert(ctx context.Context, name, message string) error {
	queryType := "upsert"
	repository := "missingRequest"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection := r.db.Client().Database(database.Name).Collection("missing_requests")
	filter := bson.M{"name": name}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{
			"last_message": message,
			"last_seen":    primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("name", name).Msg("Failed to upsert missing request")
		return fmt.Errorf("failed to upsert missing request: %w", err)
	}
	return nil
}

func (r *missingRequestRepository) FindAll(ctx context.Context, limit int64) ([]models.MissingRequest, error) {
	queryType := "findAll"
	repository := "missingRequest"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection := r.db.Client().Database(database.Name).Collection("missing_requests")
	opts := options.Find().SetSort(bson.M{"count": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Msg("Failed to find missing requests")
		return nil, fmt.Errorf("failed to find missing requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.MissingRequest
	if err = cursor.All(ctx, &requests); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Msg("Failed to decode missing requests")
		return nil, fmt.Errorf("failed to decode missing requests: %w", err)
	}
	return requests, nil
}
