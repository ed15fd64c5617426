package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"eightify/model"
	"eightify/utils"
)

const (
	inviteCodeAttempts  = 5
	DefaultFeedLimit    = 50
	DefaultFeedLookback = 7 * 24 * time.Hour
)

// CircleService manages small groups that share a leaderboard and feed.
type CircleService struct {
	circles    CircleStore
	users      UserStore
	stats      MemberStatsReader
	activities ActivityLog
	clock      utils.Clock
}

func NewCircleService(circles CircleStore, users UserStore, stats MemberStatsReader, activities ActivityLog, clock utils.Clock) *CircleService {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &CircleService{
		circles:    circles,
		users:      users,
		stats:      stats,
		activities: activities,
		clock:      clock,
	}
}

// CreateCircle makes userID the admin and first member of a new circle.
// Members of a circle cannot create another.
func (s *CircleService) CreateCircle(ctx context.Context, userID, name string) (*model.Circle, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < model.MinCircleNameLength {
		return nil, fmt.Errorf("%w: circle name must be at least %d characters", model.ErrInvalidInput, model.MinCircleNameLength)
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleID != "" {
		return nil, fmt.Errorf("%w: already a member of a circle", model.ErrInvalidInput)
	}

	now := s.clock.Now().UTC()
	circle := model.Circle{
		CircleID:    utils.NewID(),
		Name:        name,
		AdminID:     userID,
		MemberCount: 1,
		CreatedAt:   now,
	}

	for attempt := 0; ; attempt++ {
		code, err := utils.GenerateInviteCode(model.InviteCodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}
		circle.InviteCode = code

		err = s.circles.CreateCircle(ctx, circle)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrConflict) || attempt+1 >= inviteCodeAttempts {
			return nil, err
		}
	}

	if _, err := s.circles.AddMember(ctx, memberFor(circle.CircleID, user, now)); err != nil {
		return nil, err
	}
	if err := s.users.SetCircle(ctx, userID, circle.CircleID); err != nil {
		return nil, err
	}
	return &circle, nil
}

// JoinCircle adds userID to the circle with the given invite code. Joining
// a circle twice does not count the member twice; a user belongs to one
// circle at a time.
func (s *CircleService) JoinCircle(ctx context.Context, userID, inviteCode string) (*model.Circle, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if len(code) < model.InviteCodeLength {
		return nil, fmt.Errorf("%w: invite code must be %d characters", model.ErrInvalidInput, model.InviteCodeLength)
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	circle, err := s.circles.FindCircleByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, model.ErrCircleNotFound
	}
	if user.CircleID != "" && user.CircleID != circle.CircleID {
		return nil, fmt.Errorf("%w: already a member of another circle", model.ErrInvalidInput)
	}

	added, err := s.circles.AddMember(ctx, memberFor(circle.CircleID, user, s.clock.Now().UTC()))
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.circles.IncrementMemberCount(ctx, circle.CircleID, 1); err != nil {
			return nil, err
		}
		circle.MemberCount++
	}
	if err := s.users.SetCircle(ctx, userID, circle.CircleID); err != nil {
		return nil, err
	}
	return circle, nil
}

// MyCircle returns the caller's circle.
func (s *CircleService) MyCircle(ctx context.Context, userID string) (*model.Circle, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleID == "" {
		return nil, model.ErrNotInCircle
	}
	circle, err := s.circles.FindCircle(ctx, user.CircleID)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, model.ErrCircleNotFound
	}
	return circle, nil
}

// Leaderboard ranks the caller's circle by productive seconds, then total.
func (s *CircleService) Leaderboard(ctx context.Context, userID, dayKey string) ([]model.LeaderboardEntry, error) {
	circle, err := s.MyCircle(ctx, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.circles.ListMembers(ctx, circle.CircleID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	stats, err := s.stats.GetDailyStatsForUsers(ctx, ids, dayKey)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		totals := stats[m.UserID].Totals()
		entries = append(entries, model.LeaderboardEntry{
			UserID:    m.UserID,
			Name:      m.Name,
			AvatarURL: m.AvatarURL,
			Totals:    totals,
			Total:     totals.Total(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Totals.Productive != entries[j].Totals.Productive {
			return entries[i].Totals.Productive > entries[j].Totals.Productive
		}
		return entries[i].Total > entries[j].Total
	})
	return entries, nil
}

// Feed lists recent activities of the caller's circle, newest first.
func (s *CircleService) Feed(ctx context.Context, userID string, since time.Time, limit int64) ([]model.FeedItem, error) {
	circle, err := s.MyCircle(ctx, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.circles.ListMembers(ctx, circle.CircleID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if since.IsZero() {
		since = s.clock.Now().Add(-DefaultFeedLookback)
	}

	byUser := make(map[string]model.CircleMember, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		byUser[m.UserID] = m
		ids = append(ids, m.UserID)
	}

	records, err := s.activities.ListActivitiesSince(ctx, ids, since, limit)
	if err != nil {
		return nil, err
	}
	feed := make([]model.FeedItem, 0, len(records))
	for _, r := range records {
		m := byUser[r.UserID]
		feed = append(feed, model.FeedItem{
			MemberName: m.Name,
			AvatarURL:  m.AvatarURL,
			Activity:   r,
		})
	}
	return feed, nil
}

func (s *CircleService) requireUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, model.ErrNotSignedIn
	}
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", model.ErrNotSignedIn)
	}
	return user, nil
}

func memberFor(circleID string, user *model.User, joined time.Time) model.CircleMember {
	return model.CircleMember{
		ID:        model.CircleMemberID(circleID, user.UserID),
		CircleID:  circleID,
		UserID:    user.UserID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		JoinDate:  joined,
	}
}
