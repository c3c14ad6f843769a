package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucket(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"mid-year Wednesday", date(2025, time.June, 11), "2025 WK 24"},
		{"first Wednesday of year", date(2025, time.January, 1), "2025 WK 01"},
		{"Monday belonging to next ISO year", date(2024, time.December, 30), "2025 WK 01"},
		{"New Year's Eve belonging to next year", date(2025, time.December, 31), "2026 WK 01"},
		{"early January belonging to previous year", date(2027, time.January, 1), "2026 WK 53"},
		{"Sunday counted as weekday 7", date(2025, time.January, 5), "2025 WK 01"},
		{"Monday after boundary week", date(2025, time.January, 6), "2025 WK 02"},
		{"53-week year", date(2026, time.December, 28), "2026 WK 53"},
		{"leap year end", date(2032, time.December, 31), "2032 WK 53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.in))
		})
	}
}

func TestBucket_TimezoneNormalization(t *testing.T) {
	// 23:30 in UTC+7 on Jan 1 is still Jan 1 for labeling purposes.
	loc := time.FixedZone("ICT", 7*3600)
	local := time.Date(2025, time.January, 1, 23, 30, 0, 0, loc)

	// 16:30 UTC same day; label must match the UTC calendar date.
	assert.Equal(t, "2025 WK 01", Bucket(local))
}

func TestBucket_Deterministic(t *testing.T) {
	d := date(2025, time.March, 14)
	first := Bucket(d)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Bucket(d))
	}
}

func TestNumber_MondayStart(t *testing.T) {
	// Every day of one ISO week maps to the same (year, week).
	monday := date(2025, time.March, 3)
	wantYear, wantWeek := Number(monday)
	for i := 1; i < 7; i++ {
		y, w := Number(monday.AddDate(0, 0, i))
		assert.Equal(t, wantYear, y)
		assert.Equal(t, wantWeek, w)
	}

	// The next Monday starts a new week.
	y, w := Number(monday.AddDate(0, 0, 7))
	assert.Equal(t, wantWeek+1, w)
	assert.Equal(t, wantYear, y)
}
