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

type CircleRepo struct {
	Circles *mongo.Collection
	Members *mongo.Collection
}

func GetCircleRepo(db *mongo.Database) *CircleRepo {
	return &CircleRepo{
		Circles: db.Collection(CirclesCollection),
		Members: db.Collection(CircleMembersCollection),
	}
}

func (r *CircleRepo) CreateCircle(ctx context.Context, circle model.Circle) error {
	timer := utils.TrackDBOperation("insert", CirclesCollection)
	defer timer.ObserveDuration()

	if _, err := r.Circles.InsertOne(ctx, circle); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: invite code %s", model.ErrConflict, circle.InviteCode)
		}
		utils.TrackError("database")
		return fmt.Errorf("failed to create circle: %w", err)
	}
	return nil
}

func (r *CircleRepo) FindCircle(ctx context.Context, circleID string) (*model.Circle, error) {
	return r.findOne(ctx, bson.M{"_id": circleID})
}

func (r *CircleRepo) FindCircleByInviteCode(ctx context.Context, code string) (*model.Circle, error) {
	return r.findOne(ctx, bson.M{"invite_code": code})
}

func (r *CircleRepo) findOne(ctx context.Context, filter bson.M) (*model.Circle, error) {
	timer := utils.TrackDBOperation("find", CirclesCollection)
	defer timer.ObserveDuration()

	var circle model.Circle
	err := r.Circles.FindOne(ctx, filter).Decode(&circle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to find circle: %w", err)
	}
	return &circle, nil
}

// AddMember upserts the member document and reports whether it is new.
// Profile fields are refreshed for existing members.
func (r *CircleRepo) AddMember(ctx context.Context, member model.CircleMember) (bool, error) {
	timer := utils.TrackDBOperation("upsert", CircleMembersCollection)
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"name":       member.Name,
			"avatar_url": member.AvatarURL,
		},
		"$setOnInsert": bson.M{
			"circle_id": member.CircleID,
			"user_id":   member.UserID,
			"join_date": member.JoinDate,
		},
	}
	result, err := r.Members.UpdateOne(ctx,
		bson.M{"_id": model.CircleMemberID(member.CircleID, member.UserID)},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.TrackError("database")
		return false, fmt.Errorf("failed to add member: %w", err)
	}
	return result.UpsertedCount > 0, nil
}

func (r *CircleRepo) IncrementMemberCount(ctx context.Context, circleID string, delta int) error {
	timer := utils.TrackDBOperation("update", CirclesCollection)
	defer timer.ObserveDuration()

	_, err := r.Circles.UpdateOne(ctx, bson.M{"_id": circleID}, bson.M{"$inc": bson.M{"member_count": delta}})
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to update member count: %w", err)
	}
	return nil
}

func (r *CircleRepo) ListMembers(ctx context.Context, circleID string) ([]model.CircleMember, error) {
	timer := utils.TrackDBOperation("find", CircleMembersCollection)
	defer timer.ObserveDuration()

	cursor, err := r.Members.Find(ctx, bson.M{"circle_id": circleID},
		options.Find().SetSort(bson.D{{Key: "join_date", Value: 1}}))
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []model.CircleMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}
