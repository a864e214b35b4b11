package auditRepo

import (
	"context"
	"fmt"
	"time"

	"aussiemate/database"
	"aussiemate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditRepo implements AuditRepository using MongoDB.
type MongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo creates a new instance of AuditRepository using MongoDB.
func NewMongoAuditRepo() AuditRepository {
	coll := database.MongoClient.Database("aussiemate").Collection("audit")
	return &MongoAuditRepo{coll: coll}
}

func (r *MongoAuditRepo) Insert(rec *models.AuditRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

func (r *MongoAuditRepo) List(limit int64) ([]models.AuditRecord, error) {
	return r.find(bson.M{}, limit)
}

func (r *MongoAuditRepo) ListByTarget(targetType, targetID string, limit int64) ([]models.AuditRecord, error) {
	return r.find(bson.M{"targetType": targetType, "targetId": targetID}, limit)
}

func (r *MongoAuditRepo) find(filter bson.M, limit int64) ([]models.AuditRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve audit records: %w", err)
	}
	defer cursor.Close(ctx)
	var records []models.AuditRecord
	for cursor.Next(ctx) {
		var rec models.AuditRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode audit record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
