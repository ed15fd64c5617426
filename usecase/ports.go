package usecase

import (
	"context"
	"time"

	"eightify/model"
)

// GuestStore is the ephemeral key-value store that holds guest snapshots.
type GuestStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DailyStatsStore reads and atomically increments per-day aggregates.
type DailyStatsStore interface {
	GetDailyStats(ctx context.Context, userID, dayKey string) (*model.DailyStats, error)
	IncrementDailyStats(ctx context.Context, userID, dayKey string, deltas model.DailyTotals) error
}

// ActivityLog is the append-only per-user activity log.
type ActivityLog interface {
	AppendActivity(ctx context.Context, record model.ActivityRecord) error
	ListActivitiesSince(ctx context.Context, userIDs []string, since time.Time, limit int64) ([]model.ActivityRecord, error)
}

// DurableStore is everything the reconciler needs from the signed-in backend.
type DurableStore interface {
	DailyStatsStore
	AppendActivity(ctx context.Context, record model.ActivityRecord) error
}

type ActivityPublisher interface {
	PublishActivity(ctx context.Context, record model.ActivityRecord) error
}

type UserStore interface {
	UpsertProfile(ctx context.Context, user model.User) error
	FindUser(ctx context.Context, userID string) (*model.User, error)
	SetCircle(ctx context.Context, userID, circleID string) error
}

type CircleStore interface {
	CreateCircle(ctx context.Context, circle model.Circle) error
	FindCircle(ctx context.Context, circleID string) (*model.Circle, error)
	FindCircleByInviteCode(ctx context.Context, code string) (*model.Circle, error)
	AddMember(ctx context.Context, member model.CircleMember) (bool, error)
	IncrementMemberCount(ctx context.Context, circleID string, delta int) error
	ListMembers(ctx context.Context, circleID string) ([]model.CircleMember, error)
}

type MemberStatsReader interface {
	GetDailyStatsForUsers(ctx context.Context, userIDs []string, dayKey string) (map[string]*model.DailyStats, error)
}

// TokenBlacklist revokes bearer tokens before they expire.
type TokenBlacklist interface {
	Blacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) bool
}
