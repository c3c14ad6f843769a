// Package week converts calendar dates into ledger week labels.
//
// Labels follow the ISO-8601 week convention: weeks start on Monday and a
// week belongs to the year that contains its Thursday. The label format is
// "YYYY WK NN" with a zero-padded two-digit week number, matching the
// column values stored in the transaction ledger.
package week

import (
	"fmt"
	"time"
)

// Bucket returns the week label for t, e.g. "2025 WK 07".
// The computation is referentially transparent: same input, same label.
func Bucket(t time.Time) string {
	year, wk := Number(t)
	return fmt.Sprintf("%d WK %02d", year, wk)
}

// Number returns the ISO year and week number for t.
// Dates near year boundaries may belong to the other year's first or last
// week (Dec 29-31 can be WK 01 of the next year, Jan 1-3 can be WK 52/53
// of the previous one).
func Number(t time.Time) (year, wk int) {
	d := midnightUTC(t)

	// Shift to the Thursday of the same ISO week. That Thursday's year is
	// the ISO year, and its ordinal day determines the week number.
	thursday := d.AddDate(0, 0, 4-isoWeekday(d))

	year = thursday.Year()
	wk = (thursday.YearDay() + 6) / 7
	return year, wk
}

// isoWeekday maps time.Weekday to ISO numbering: Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
