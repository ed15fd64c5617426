package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"eightify/model"
)

var errBackendDown = errors.New("backend down")

// guestStoreStub is an in-memory GuestStore that can be told to fail.
type guestStoreStub struct {
	mu       sync.Mutex
	data     map[string]string
	failGet  bool
	failSet  bool
	setCalls int
	removed  []string
}

func newGuestStoreStub() *guestStoreStub {
	return &guestStoreStub{data: make(map[string]string)}
}

func (s *guestStoreStub) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errBackendDown
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *guestStoreStub) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.failSet {
		return errBackendDown
	}
	s.data[key] = value
	return nil
}

func (s *guestStoreStub) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, key)
	delete(s.data, key)
	return nil
}

func (s *guestStoreStub) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// durableStub is an in-memory DurableStore, ActivityLog and MemberStatsReader.
type durableStub struct {
	mu            sync.Mutex
	stats         map[string]*model.DailyStats
	activities    []model.ActivityRecord
	increments    []model.DailyTotals
	failRead      bool
	failIncrement bool
	failAppend    bool
}

func newDurableStub() *durableStub {
	return &durableStub{stats: make(map[string]*model.DailyStats)}
}

func (d *durableStub) seed(userID, dayKey string, totals model.DailyTotals) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats[model.DailyStatsID(userID, dayKey)] = &model.DailyStats{
		UserID: userID, DayKey: dayKey,
		Productive: totals.Productive, Personal: totals.Personal, Sleep: totals.Sleep,
		Total: totals.Total(),
	}
}

func (d *durableStub) GetDailyStats(_ context.Context, userID, dayKey string) (*model.DailyStats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failRead {
		return nil, errBackendDown
	}
	s, ok := d.stats[model.DailyStatsID(userID, dayKey)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (d *durableStub) IncrementDailyStats(_ context.Context, userID, dayKey string, deltas model.DailyTotals) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failIncrement {
		return errBackendDown
	}
	d.increments = append(d.increments, deltas)
	id := model.DailyStatsID(userID, dayKey)
	s, ok := d.stats[id]
	if !ok {
		s = &model.DailyStats{ID: id, UserID: userID, DayKey: dayKey}
		d.stats[id] = s
	}
	s.Productive += deltas.Productive
	s.Personal += deltas.Personal
	s.Sleep += deltas.Sleep
	s.Total += deltas.Total()
	return nil
}

func (d *durableStub) AppendActivity(_ context.Context, record model.ActivityRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failAppend {
		return errBackendDown
	}
	d.activities = append(d.activities, record)
	return nil
}

func (d *durableStub) ListActivitiesSince(_ context.Context, userIDs []string, since time.Time, limit int64) ([]model.ActivityRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failRead {
		return nil, errBackendDown
	}
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	out := []model.ActivityRecord{}
	for _, r := range d.activities {
		if wanted[r.UserID] && !r.StartTime.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (d *durableStub) GetDailyStatsForUsers(_ context.Context, userIDs []string, dayKey string) (map[string]*model.DailyStats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]*model.DailyStats)
	for _, id := range userIDs {
		if s, ok := d.stats[model.DailyStatsID(id, dayKey)]; ok {
			cp := *s
			out[id] = &cp
		}
	}
	return out, nil
}

func (d *durableStub) totals(userID, dayKey string) model.DailyTotals {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats[model.DailyStatsID(userID, dayKey)].Totals()
}

// hangingDurable blocks every write until the caller's context ends, like
// a store that stopped answering.
type hangingDurable struct {
	*durableStub
	errMu sync.Mutex
	errs  []error
}

func (h *hangingDurable) wait(ctx context.Context) error {
	<-ctx.Done()
	h.errMu.Lock()
	defer h.errMu.Unlock()
	h.errs = append(h.errs, ctx.Err())
	return ctx.Err()
}

func (h *hangingDurable) AppendActivity(ctx context.Context, _ model.ActivityRecord) error {
	return h.wait(ctx)
}

func (h *hangingDurable) IncrementDailyStats(ctx context.Context, _, _ string, _ model.DailyTotals) error {
	return h.wait(ctx)
}

func (h *hangingDurable) seenErrors() []error {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	return append([]error(nil), h.errs...)
}

type publisherStub struct {
	mu        sync.Mutex
	published []model.ActivityRecord
}

func (p *publisherStub) PublishActivity(_ context.Context, record model.ActivityRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, record)
	return nil
}

type userStoreStub struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{users: make(map[string]*model.User)}
}

func (s *userStoreStub) UpsertProfile(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.UserID]
	if !ok {
		existing = &model.User{UserID: user.UserID, CreatedAt: time.Now()}
		s.users[user.UserID] = existing
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.AvatarURL = user.AvatarURL
	existing.LastLogin = time.Now()
	return nil
}

func (s *userStoreStub) FindUser(_ context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *userStoreStub) SetCircle(_ context.Context, userID, circleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		u = &model.User{UserID: userID}
		s.users[userID] = u
	}
	u.CircleID = circleID
	return nil
}

type circleStoreStub struct {
	mu       sync.Mutex
	circles  map[string]*model.Circle
	members  map[string]model.CircleMember
	conflict int
}

func newCircleStoreStub() *circleStoreStub {
	return &circleStoreStub{
		circles: make(map[string]*model.Circle),
		members: make(map[string]model.CircleMember),
	}
}

func (s *circleStoreStub) CreateCircle(_ context.Context, circle model.Circle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflict > 0 {
		s.conflict--
		return model.ErrConflict
	}
	cp := circle
	s.circles[circle.CircleID] = &cp
	return nil
}

func (s *circleStoreStub) FindCircle(_ context.Context, circleID string) (*model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.circles[circleID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *circleStoreStub) FindCircleByInviteCode(_ context.Context, code string) (*model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.circles {
		if c.InviteCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *circleStoreStub) AddMember(_ context.Context, member model.CircleMember) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := model.CircleMemberID(member.CircleID, member.UserID)
	_, exists := s.members[id]
	s.members[id] = member
	return !exists, nil
}

func (s *circleStoreStub) IncrementMemberCount(_ context.Context, circleID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.circles[circleID]; ok {
		c.MemberCount += delta
	}
	return nil
}

func (s *circleStoreStub) ListMembers(_ context.Context, circleID string) ([]model.CircleMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.CircleMember{}
	for _, m := range s.members {
		if m.CircleID == circleID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinDate.Before(out[j].JoinDate) })
	return out, nil
}
