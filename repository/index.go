package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		ActivitiesCollection: {
			// Timeline and feed queries
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "start_time", Value: -1},
				},
				Options: options.Index().SetName("user_activities_start"),
			},
		},
		DailyStatsCollection: {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "day_key", Value: -1},
				},
				Options: options.Index().SetName("user_daily_stats"),
			},
		},
		CirclesCollection: {
			{
				Keys:    bson.D{{Key: "invite_code", Value: 1}},
				Options: options.Index().SetName("invite_code_unique").SetUnique(true),
			},
		},
		CircleMembersCollection: {
			{
				Keys: bson.D{
					{Key: "circle_id", Value: 1},
					{Key: "join_date", Value: 1},
				},
				Options: options.Index().SetName("circle_members_join"),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
