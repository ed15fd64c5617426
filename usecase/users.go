package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eightify/model"
	"eightify/utils"
)

// UserService handles sign-in and sign-out around the identity provider's
// profile and this service's bearer tokens.
type UserService struct {
	users     UserStore
	tokens    *utils.TokenIssuer
	blacklist TokenBlacklist
}

func NewUserService(users UserStore, tokens *utils.TokenIssuer, blacklist TokenBlacklist) *UserService {
	return &UserService{users: users, tokens: tokens, blacklist: blacklist}
}

// SignIn merge-writes the profile and issues a token for it.
func (s *UserService) SignIn(ctx context.Context, req model.SignInRequest) (*model.User, string, time.Time, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, "", time.Time{}, fmt.Errorf("%w: user id is required", model.ErrInvalidInput)
	}

	user := model.User{
		UserID:    userID,
		Name:      strings.TrimSpace(req.DisplayName),
		Email:     req.Email,
		AvatarURL: req.PhotoURL,
	}
	if err := s.users.UpsertProfile(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.Generate(userID)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return &user, token, expiresAt, nil
}

// SignOut revokes token until it would have expired anyway.
func (s *UserService) SignOut(ctx context.Context, token string) error {
	_, expiresAt, err := s.tokens.Parse(token)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrNotSignedIn, err)
	}
	return s.blacklist.Blacklist(ctx, token, expiresAt)
}

// Authenticate resolves a bearer token to a user id.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	if s.blacklist.IsBlacklisted(ctx, token) {
		return "", fmt.Errorf("%w: token has been revoked", model.ErrNotSignedIn)
	}
	userID, _, err := s.tokens.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrNotSignedIn, err)
	}
	return userID, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrNotSignedIn
	}
	return user, nil
}
