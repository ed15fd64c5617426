package model

import "time"

// RunningActivity is the timer session that exists only while a timer is active.
type RunningActivity struct {
	Category Category  `json:"category"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
}

// ActivityRecord is an immutable fact produced by a successful stop.
type ActivityRecord struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name      string    `bson:"name" json:"name"`
	Category  Category  `bson:"category" json:"category"`
	StartTime time.Time `bson:"start_time" json:"start_time"`
	EndTime   time.Time `bson:"end_time" json:"end_time"`
	Duration  int64     `bson:"duration" json:"duration"`
	DayKey    string    `bson:"day_key" json:"day_key"`
	Device    string    `bson:"device,omitempty" json:"device,omitempty"`
}
