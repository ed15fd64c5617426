package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"eightify/model"
	"eightify/utils"
)

// DefaultTimelineLimit caps the number of activities returned by a timeline.
const DefaultTimelineLimit = 200

type StatsService struct {
	stats      DailyStatsStore
	activities ActivityLog
}

func NewStatsService(stats DailyStatsStore, activities ActivityLog) *StatsService {
	return &StatsService{stats: stats, activities: activities}
}

// DailySummary reads a user's durable totals for a day. Missing documents
// and read failures both come back as zeros.
func (s *StatsService) DailySummary(ctx context.Context, userID, dayKey string) model.DailySummary {
	stats, err := s.stats.GetDailyStats(ctx, userID, dayKey)
	if err != nil {
		log.Printf("Error reading daily stats for %s on %s: %v", userID, dayKey, err)
		utils.TrackStorageFailure(backendDurable, "read")
		stats = nil
	}
	totals := stats.Totals()
	return model.DailySummary{
		DayKey:    dayKey,
		Totals:    totals,
		Total:     totals.Total(),
		Untracked: totals.Untracked(),
	}
}

// Timeline lists a user's activities in the filter window, newest first.
func (s *StatsService) Timeline(ctx context.Context, userID, filter string, now time.Time, loc *time.Location) ([]model.ActivityRecord, error) {
	since, err := TimelineSince(model.TimelineFilter(strings.ToLower(strings.TrimSpace(filter))), now, loc)
	if err != nil {
		return nil, err
	}
	records, err := s.activities.ListActivitiesSince(ctx, []string{userID}, since, DefaultTimelineLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorageRead, err)
	}
	return records, nil
}

// TimelineSince is the inclusive lower bound of a timeline window. Weeks
// start on Sunday; an empty filter means today.
func TimelineSince(filter model.TimelineFilter, now time.Time, loc *time.Location) (time.Time, error) {
	midnight := model.StartOfDay(now, loc)
	switch filter {
	case model.FilterToday, "":
		return midnight, nil
	case model.FilterWeek:
		return midnight.AddDate(0, 0, -int(midnight.Weekday())), nil
	case model.FilterMonth:
		return midnight.AddDate(0, 0, 1-midnight.Day()), nil
	case model.FilterAll:
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown filter %q", model.ErrInvalidInput, filter)
}
