package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eightify/model"
	"eightify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{MongoCollection: db.Collection(UsersCollection)}
}

// UpsertProfile merge-writes the identity provider's profile fields. Fields
// owned by this service, such as circle_id, are left untouched.
func (r *UserRepo) UpsertProfile(ctx context.Context, user model.User) error {
	timer := utils.TrackDBOperation("upsert", UsersCollection)
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"name":       user.Name,
			"email":      user.Email,
			"avatar_url": user.AvatarURL,
		},
		"$setOnInsert": bson.M{"created_at": time.Now()},
		"$currentDate": bson.M{"last_login": true},
	}
	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": user.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// FindUser returns nil without error for unknown users.
func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) SetCircle(ctx context.Context, userID, circleID string) error {
	timer := utils.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"circle_id": circleID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to set circle: %w", err)
	}
	return nil
}
