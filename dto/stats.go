package dto

import (
	"time"

	"eightify/model"
	"eightify/utils"
)

type ActivityResponse struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Category          model.Category `json:"category"`
	StartTime         time.Time      `json:"start_time"`
	EndTime           time.Time      `json:"end_time"`
	Duration          int64          `json:"duration"`
	DurationFormatted string         `json:"duration_formatted"`
	DayKey            string         `json:"day_key"`
	Device            string         `json:"device,omitempty"`
}

type TimelineResponse struct {
	Filter     string             `json:"filter"`
	Activities []ActivityResponse `json:"activities"`
	Count      int                `json:"count"`
}

type FeedItemResponse struct {
	MemberName string           `json:"member_name"`
	AvatarURL  string           `json:"avatar_url,omitempty"`
	Activity   ActivityResponse `json:"activity"`
}

type LeaderboardEntryResponse struct {
	Rank           int            `json:"rank"`
	UserID         string         `json:"user_id"`
	Name           string         `json:"name"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	Totals         TotalsResponse `json:"totals"`
	TotalFormatted string         `json:"total_formatted"`
}

func ToActivityResponse(record model.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		ID:                record.ID,
		Name:              record.Name,
		Category:          record.Category,
		StartTime:         record.StartTime,
		EndTime:           record.EndTime,
		Duration:          record.Duration,
		DurationFormatted: utils.FormatShort(record.Duration),
		DayKey:            record.DayKey,
		Device:            record.Device,
	}
}

func ToTimelineResponse(filter string, records []model.ActivityRecord) TimelineResponse {
	activities := make([]ActivityResponse, 0, len(records))
	for _, r := range records {
		activities = append(activities, ToActivityResponse(r))
	}
	return TimelineResponse{Filter: filter, Activities: activities, Count: len(activities)}
}

func ToFeedResponse(items []model.FeedItem) []FeedItemResponse {
	out := make([]FeedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FeedItemResponse{
			MemberName: item.MemberName,
			AvatarURL:  item.AvatarURL,
			Activity:   ToActivityResponse(item.Activity),
		})
	}
	return out
}

// ToLeaderboardResponse keeps the order it is given and numbers it from 1.
func ToLeaderboardResponse(dayKey string, entries []model.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, 0, len(entries))
	for i, e := range entries {
		out = append(out, LeaderboardEntryResponse{
			Rank:           i + 1,
			UserID:         e.UserID,
			Name:           e.Name,
			AvatarURL:      e.AvatarURL,
			Totals:         ToTotalsResponse(dayKey, e.Totals, true),
			TotalFormatted: utils.FormatHoursMinutes(e.Total),
		})
	}
	return out
}
