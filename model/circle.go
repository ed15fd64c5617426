package model

import "time"

const (
	MinCircleNameLength = 3
	InviteCodeLength    = 6
)

type Circle struct {
	CircleID    string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	AdminID     string    `bson:"admin_id" json:"admin_id"`
	InviteCode  string    `bson:"invite_code" json:"invite_code"`
	MemberCount int       `bson:"member_count" json:"member_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type CircleMember struct {
	ID        string    `bson:"_id" json:"-"`
	CircleID  string    `bson:"circle_id" json:"circle_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Name      string    `bson:"name" json:"name"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	JoinDate  time.Time `bson:"join_date" json:"join_date"`
}

func CircleMemberID(circleID, userID string) string {
	return circleID + ":" + userID
}

type CreateCircleRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinCircleRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}
