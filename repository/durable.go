package repository

import "go.mongodb.org/mongo-driver/mongo"

// DurableStore is the signed-in backend a tracker writes through to: the
// daily aggregates plus the activity log.
type DurableStore struct {
	*DailyStatsRepo
	*ActivityRepo
}

func GetDurableStore(db *mongo.Database) *DurableStore {
	return &DurableStore{
		DailyStatsRepo: GetDailyStatsRepo(db),
		ActivityRepo:   GetActivityRepo(db),
	}
}
