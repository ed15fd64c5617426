package model

import "time"

// DailyStats is the durable per-user, per-day aggregate document.
type DailyStats struct {
	ID         string    `bson:"_id" json:"-"`
	UserID     string    `bson:"user_id" json:"user_id"`
	DayKey     string    `bson:"day_key" json:"day_key"`
	Productive int64     `bson:"productive" json:"productive"`
	Personal   int64     `bson:"personal" json:"personal"`
	Sleep      int64     `bson:"sleep" json:"sleep"`
	Total      int64     `bson:"total" json:"total"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// DailyStatsID is the document id for a user's day.
func DailyStatsID(userID, dayKey string) string {
	return userID + ":" + dayKey
}

// Totals returns the three category fields; missing fields decode as zero.
func (s *DailyStats) Totals() DailyTotals {
	if s == nil {
		return DailyTotals{}
	}
	return DailyTotals{Productive: s.Productive, Personal: s.Personal, Sleep: s.Sleep}
}

// DailySummary feeds the daily pie chart.
type DailySummary struct {
	DayKey    string      `json:"day_key"`
	Totals    DailyTotals `json:"totals"`
	Total     int64       `json:"total"`
	Untracked int64       `json:"untracked"`
}

// TimelineFilter selects the window of the activity timeline.
type TimelineFilter string

const (
	FilterToday TimelineFilter = "today"
	FilterWeek  TimelineFilter = "week"
	FilterMonth TimelineFilter = "month"
	FilterAll   TimelineFilter = "all"
)

// LeaderboardEntry is one member's line on a circle leaderboard.
type LeaderboardEntry struct {
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Totals    DailyTotals `json:"totals"`
	Total     int64       `json:"total"`
}

// FeedItem is a member's activity shown on the circle feed.
type FeedItem struct {
	MemberName string         `json:"member_name"`
	AvatarURL  string         `json:"avatar_url,omitempty"`
	Activity   ActivityRecord `json:"activity"`
}
