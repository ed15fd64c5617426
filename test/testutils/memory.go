package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"eightify/model"
)

// MemoryStore keeps daily stats, activities, users and circles in maps so
// HTTP tests can run without Mongo. It mirrors the repository semantics:
// missing documents read as nil, increments add, AddMember is idempotent.
type MemoryStore struct {
	mu         sync.Mutex
	stats      map[string]*model.DailyStats
	activities []model.ActivityRecord
	users      map[string]*model.User
	circles    map[string]*model.Circle
	members    map[string]model.CircleMember
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats:   make(map[string]*model.DailyStats),
		users:   make(map[string]*model.User),
		circles: make(map[string]*model.Circle),
		members: make(map[string]model.CircleMember),
	}
}

func (m *MemoryStore) GetDailyStats(_ context.Context, userID, dayKey string) (*model.DailyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[model.DailyStatsID(userID, dayKey)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) IncrementDailyStats(_ context.Context, userID, dayKey string, deltas model.DailyTotals) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := model.DailyStatsID(userID, dayKey)
	s, ok := m.stats[id]
	if !ok {
		s = &model.DailyStats{ID: id, UserID: userID, DayKey: dayKey}
		m.stats[id] = s
	}
	s.Productive += deltas.Productive
	s.Personal += deltas.Personal
	s.Sleep += deltas.Sleep
	s.Total += deltas.Total()
	s.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) GetDailyStatsForUsers(_ context.Context, userIDs []string, dayKey string) (map[string]*model.DailyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*model.DailyStats)
	for _, id := range userIDs {
		if s, ok := m.stats[model.DailyStatsID(id, dayKey)]; ok {
			cp := *s
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *MemoryStore) AppendActivity(_ context.Context, record model.ActivityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, record)
	return nil
}

func (m *MemoryStore) ListActivitiesSince(_ context.Context, userIDs []string, since time.Time, limit int64) ([]model.ActivityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	out := []model.ActivityRecord{}
	for _, r := range m.activities {
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

// Activities returns a copy of every appended record.
func (m *MemoryStore) Activities() []model.ActivityRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ActivityRecord(nil), m.activities...)
}

func (m *MemoryStore) UpsertProfile(_ context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[user.UserID]
	if !ok {
		existing = &model.User{UserID: user.UserID, CreatedAt: time.Now()}
		m.users[user.UserID] = existing
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.AvatarURL = user.AvatarURL
	existing.LastLogin = time.Now()
	return nil
}

func (m *MemoryStore) FindUser(_ context.Context, userID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) SetCircle(_ context.Context, userID, circleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		u = &model.User{UserID: userID}
		m.users[userID] = u
	}
	u.CircleID = circleID
	return nil
}

func (m *MemoryStore) CreateCircle(_ context.Context, circle model.Circle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.circles {
		if c.InviteCode == circle.InviteCode {
			return model.ErrConflict
		}
	}
	cp := circle
	m.circles[circle.CircleID] = &cp
	return nil
}

func (m *MemoryStore) FindCircle(_ context.Context, circleID string) (*model.Circle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.circles[circleID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) FindCircleByInviteCode(_ context.Context, code string) (*model.Circle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.circles {
		if c.InviteCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) AddMember(_ context.Context, member model.CircleMember) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := model.CircleMemberID(member.CircleID, member.UserID)
	_, exists := m.members[id]
	m.members[id] = member
	return !exists, nil
}

func (m *MemoryStore) IncrementMemberCount(_ context.Context, circleID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.circles[circleID]; ok {
		c.MemberCount += delta
	}
	return nil
}

func (m *MemoryStore) ListMembers(_ context.Context, circleID string) ([]model.CircleMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.CircleMember{}
	for _, member := range m.members {
		if member.CircleID == circleID {
			out = append(out, member)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinDate.Before(out[j].JoinDate) })
	return out, nil
}
