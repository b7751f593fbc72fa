package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MissingRequest counts queries that matched zero tools, keyed by the
// extracted tool or category name.
type MissingRequest struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Count       int                `json:"count" bson:"count"`
	LastMessage string             `json:"last_message" bson:"last_message"`
	LastSeen    primitive.DateTime `json:"last_seen" bson:"last_seen"`
}
