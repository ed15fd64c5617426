package model

import "time"

// StartTimerRequest is the body of a start call. Name may be empty.
type StartTimerRequest struct {
	Category string `json:"category" binding:"required,category"`
	Name     string `json:"name" binding:"max=120"`
}

// TimerStatus is the presentational view of a tracker.
type TimerStatus struct {
	Running        bool        `json:"running"`
	Category       Category    `json:"category,omitempty"`
	Name           string      `json:"name,omitempty"`
	StartedAt      *time.Time  `json:"started_at,omitempty"`
	ElapsedSeconds int64       `json:"elapsed_seconds"`
	DayKey         string      `json:"day_key"`
	SignedIn       bool        `json:"signed_in"`
	Totals         DailyTotals `json:"totals"`
}

// Tick is a one-second display update for a running timer.
type Tick struct {
	Category       Category `json:"category"`
	Name           string   `json:"name"`
	ElapsedSeconds int64    `json:"elapsed_seconds"`
}
