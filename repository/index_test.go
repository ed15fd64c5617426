package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSetupIndexes(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	expected := map[string][]string{
		ActivitiesCollection:    {"_id_", "user_activities_start"},
		DailyStatsCollection:    {"_id_", "user_daily_stats"},
		CirclesCollection:       {"_id_", "invite_code_unique"},
		CircleMembersCollection: {"_id_", "circle_members_join"},
	}
	for collection, names := range expected {
		cursor, err := db.Collection(collection).Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		found := make(map[string]bson.M, len(indexes))
		for _, idx := range indexes {
			found[idx["name"].(string)] = idx
		}
		for _, name := range names {
			assert.Contains(t, found, name, "collection %s", collection)
		}
		if collection == CirclesCollection {
			assert.Equal(t, true, found["invite_code_unique"]["unique"])
		}
	}

	// Creating the same indexes twice is a no-op.
	assert.NoError(t, SetupIndexes(db))
}
