package repository

import (
	"context"
	"fmt"
	"time"

	"eightify/model"
	"eightify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepo is the append-only per-user activity log.
type ActivityRepo struct {
	MongoCollection *mongo.Collection
}

func GetActivityRepo(db *mongo.Database) *ActivityRepo {
	return &ActivityRepo{MongoCollection: db.Collection(ActivitiesCollection)}
}

func (r *ActivityRepo) AppendActivity(ctx context.Context, record model.ActivityRecord) error {
	timer := utils.TrackDBOperation("insert", ActivitiesCollection)
	defer timer.ObserveDuration()

	if record.UserID == "" {
		return fmt.Errorf("%w: activity without user", model.ErrInvalidInput)
	}
	if _, err := r.MongoCollection.InsertOne(ctx, record); err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ListActivitiesSince returns activities started at or after since, newest first.
// A limit of zero means no limit.
func (r *ActivityRepo) ListActivitiesSince(ctx context.Context, userIDs []string, since time.Time, limit int64) ([]model.ActivityRecord, error) {
	timer := utils.TrackDBOperation("find", ActivitiesCollection)
	defer timer.ObserveDuration()

	if len(userIDs) == 0 {
		return []model.ActivityRecord{}, nil
	}

	filter := bson.M{
		"user_id":    bson.M{"$in": userIDs},
		"start_time": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer cursor.Close(ctx)

	records := []model.ActivityRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return records, nil
}
