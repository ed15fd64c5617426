package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// GuestSnapshot is the shape persisted in the ephemeral guest store.
type GuestSnapshot struct {
	Accumulated DailyTotals `json:"accumulated"`
	LastSave    time.Time   `json:"lastSave"`
	DayKey      string      `json:"dayKey,omitempty"`
}

// SavedDayKey returns the day the snapshot belongs to. Snapshots written
// before dayKey existed fall back to lastSave converted in loc.
func (s GuestSnapshot) SavedDayKey(loc *time.Location) string {
	if s.DayKey != "" {
		return s.DayKey
	}
	if s.LastSave.IsZero() {
		return ""
	}
	return DayKey(s.LastSave, loc)
}

func (s GuestSnapshot) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal guest snapshot: %v", err)
	}
	return string(data), nil
}

// DecodeGuestSnapshot parses a stored snapshot. Any malformed payload,
// including negative totals, is reported as ErrStorageRead.
func DecodeGuestSnapshot(raw string) (GuestSnapshot, error) {
	var snap GuestSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return GuestSnapshot{}, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	a := snap.Accumulated
	if a.Productive < 0 || a.Personal < 0 || a.Sleep < 0 {
		return GuestSnapshot{}, fmt.Errorf("%w: negative totals", ErrStorageRead)
	}
	if snap.DayKey != "" {
		if _, err := time.Parse(DayKeyLayout, snap.DayKey); err != nil {
			return GuestSnapshot{}, fmt.Errorf("%w: bad day key %q", ErrStorageRead, snap.DayKey)
		}
	}
	return snap, nil
}
