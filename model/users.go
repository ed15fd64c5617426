package model

import "time"

// User is the durable profile document, written with merge semantics on every sign-in.
type User struct {
	UserID    string    `bson:"_id" json:"user_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CircleID  string    `bson:"circle_id,omitempty" json:"circle_id,omitempty"`
	LastLogin time.Time `bson:"last_login" json:"last_login"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SignInRequest carries the profile handed over by the identity provider.
type SignInRequest struct {
	UserID      string `json:"user_id" binding:"required,max=128"`
	DisplayName string `json:"display_name" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url"`
}
