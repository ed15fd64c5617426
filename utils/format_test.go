package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "01:01:01", FormatClock(3661))
	assert.Equal(t, "25:00:00", FormatClock(90000))
	assert.Equal(t, "00:00:00", FormatClock(-3))
}

func TestFormatShort(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{60, "1m"},
		{3600, "1h"},
		{3900, "1h 5m"},
		{3605, "1h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatShort(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatHoursMinutes(59))
	assert.Equal(t, "2h 30m", FormatHoursMinutes(9000))
}
