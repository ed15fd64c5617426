package dto

import (
	"time"

	"eightify/model"
)

type UserLink struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type UserProfileResponse struct {
	UserID    string              `json:"user_id"`
	Name      string              `json:"name"`
	Email     string              `json:"email,omitempty"`
	AvatarURL string              `json:"avatar_url,omitempty"`
	CircleID  string              `json:"circle_id,omitempty"`
	LastLogin time.Time           `json:"last_login"`
	Links     map[string]UserLink `json:"_links,omitempty"`
}

type SignInResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      UserProfileResponse `json:"user"`
}

func ToUserProfileResponse(user *model.User, links map[string]UserLink) UserProfileResponse {
	return UserProfileResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CircleID:  user.CircleID,
		LastLogin: user.LastLogin,
		Links:     links,
	}
}

// ProfileLinks lists what a signed-in user can do next.
func ProfileLinks(user *model.User) map[string]UserLink {
	links := map[string]UserLink{
		"timer":   {Href: "/api/timer"},
		"stats":   {Href: "/api/stats/daily"},
		"signout": {Href: "/api/auth/signout", Method: "POST"},
	}
	if user.CircleID != "" {
		links["circle"] = UserLink{Href: "/api/circles/mine"}
	} else {
		links["join_circle"] = UserLink{Href: "/api/circles/join", Method: "POST"}
	}
	return links
}
