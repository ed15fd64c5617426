package repository

import (
	"context"
	"errors"
	"fmt"

	"eightify/model"
	"eightify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DailyStatsRepo struct {
	MongoCollection *mongo.Collection
}

func GetDailyStatsRepo(db *mongo.Database) *DailyStatsRepo {
	return &DailyStatsRepo{MongoCollection: db.Collection(DailyStatsCollection)}
}

// GetDailyStats returns nil without error when the day has no document yet.
func (r *DailyStatsRepo) GetDailyStats(ctx context.Context, userID, dayKey string) (*model.DailyStats, error) {
	timer := utils.TrackDBOperation("find", DailyStatsCollection)
	defer timer.ObserveDuration()

	var stats model.DailyStats
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": model.DailyStatsID(userID, dayKey)}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}
	return &stats, nil
}

// IncrementDailyStats atomically adds deltas to every category field and to
// total, creating the day's document when missing. Concurrent callers commute.
// Zero deltas still upsert the document, which is how rollover writes a fresh day.
func (r *DailyStatsRepo) IncrementDailyStats(ctx context.Context, userID, dayKey string, deltas model.DailyTotals) error {
	timer := utils.TrackDBOperation("upsert", DailyStatsCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"_id": model.DailyStatsID(userID, dayKey)}
	update := bson.M{
		"$inc": bson.M{
			"productive": deltas.Productive,
			"personal":   deltas.Personal,
			"sleep":      deltas.Sleep,
			"total":      deltas.Total(),
		},
		"$setOnInsert": bson.M{
			"user_id": userID,
			"day_key": dayKey,
		},
		"$currentDate": bson.M{"updated_at": true},
	}

	if _, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to increment daily stats: %w", err)
	}
	return nil
}

// GetDailyStatsForUsers loads one day for several users, keyed by user id.
func (r *DailyStatsRepo) GetDailyStatsForUsers(ctx context.Context, userIDs []string, dayKey string) (map[string]*model.DailyStats, error) {
	timer := utils.TrackDBOperation("find", DailyStatsCollection)
	defer timer.ObserveDuration()

	result := make(map[string]*model.DailyStats, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, model.DailyStatsID(id, dayKey))
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*model.DailyStats
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode daily stats: %w", err)
	}
	for _, doc := range docs {
		result[doc.UserID] = doc
	}
	return result, nil
}
