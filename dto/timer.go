package dto

import (
	"time"

	"eightify/model"
	"eightify/utils"
)

// CategoryTotal is one category line of the totals panel.
type CategoryTotal struct {
	Category  model.Category `json:"category"`
	Seconds   int64          `json:"seconds"`
	Formatted string         `json:"formatted"`
}

type TotalsResponse struct {
	DayKey             string          `json:"day_key"`
	Categories         []CategoryTotal `json:"categories"`
	Total              int64           `json:"total"`
	TotalFormatted     string          `json:"total_formatted"`
	Untracked          int64           `json:"untracked"`
	UntrackedFormatted string          `json:"untracked_formatted"`
	SignedIn           bool            `json:"signed_in"`
}

type TimerResponse struct {
	Running        bool           `json:"running"`
	Category       model.Category `json:"category,omitempty"`
	Name           string         `json:"name,omitempty"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	Clock          string         `json:"clock"`
	Totals         TotalsResponse `json:"totals"`
}

// TimerActionResponse carries the record a start or stop produced, if any.
type TimerActionResponse struct {
	Recorded *model.ActivityRecord `json:"recorded,omitempty"`
	Timer    TimerResponse         `json:"timer"`
}

type TickEvent struct {
	Category       model.Category `json:"category"`
	Name           string         `json:"name"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	Clock          string         `json:"clock"`
}

func ToTotalsResponse(dayKey string, totals model.DailyTotals, signedIn bool) TotalsResponse {
	categories := make([]CategoryTotal, 0, len(model.Categories))
	for _, c := range model.Categories {
		seconds := totals.Get(c)
		categories = append(categories, CategoryTotal{
			Category:  c,
			Seconds:   seconds,
			Formatted: utils.FormatHoursMinutes(seconds),
		})
	}
	return TotalsResponse{
		DayKey:             dayKey,
		Categories:         categories,
		Total:              totals.Total(),
		TotalFormatted:     utils.FormatHoursMinutes(totals.Total()),
		Untracked:          totals.Untracked(),
		UntrackedFormatted: utils.FormatHoursMinutes(totals.Untracked()),
		SignedIn:           signedIn,
	}
}

func ToTimerResponse(status model.TimerStatus) TimerResponse {
	return TimerResponse{
		Running:        status.Running,
		Category:       status.Category,
		Name:           status.Name,
		StartedAt:      status.StartedAt,
		ElapsedSeconds: status.ElapsedSeconds,
		Clock:          utils.FormatClock(status.ElapsedSeconds),
		Totals:         ToTotalsResponse(status.DayKey, status.Totals, status.SignedIn),
	}
}

func ToTickEvent(tick model.Tick) TickEvent {
	return TickEvent{
		Category:       tick.Category,
		Name:           tick.Name,
		ElapsedSeconds: tick.ElapsedSeconds,
		Clock:          utils.FormatClock(tick.ElapsedSeconds),
	}
}
