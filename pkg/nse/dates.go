package nse

import (
	"fmt"
	"sort"
	"time"
)

// All date strings on the wire use one of two layouts. Expiry and holiday
// fields carry dd-MMM-yyyy, while range query parameters carry dd-mm-yyyy.
const (
	ExpiryDateLayout = "02-Jan-2006"
	QueryDateLayout  = "02-01-2006"

	indexDateLayout = "02 Jan 2006"
)

// ParseExpiryDate parses a dd-MMM-yyyy string such as "27-Jun-2024".
func ParseExpiryDate(s string) (time.Time, error) {
	t, err := time.Parse(ExpiryDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expiry date %q: want dd-MMM-yyyy", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseQueryDate parses a dd-mm-yyyy string such as "27-06-2024".
func ParseQueryDate(s string) (time.Time, error) {
	t, err := time.Parse(QueryDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: query date %q: want dd-mm-yyyy", ErrInvalidInput, s)
	}
	return t, nil
}

// FilterExpiryDates keeps the expiries that fall on or after today's
// calendar date in today's location and returns them in ascending
// chronological order. Unparseable entries are dropped. The boundary is
// built from calendar components so that a caller in a non-UTC zone is
// not shifted onto the previous day.
func FilterExpiryDates(dates []string, today time.Time) []string {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	type dated struct {
		raw string
		t   time.Time
	}
	keep := make([]dated, 0, len(dates))
	for _, d := range dates {
		t, err := ParseExpiryDate(d)
		if err != nil {
			continue
		}
		if !t.Before(day) {
			keep = append(keep, dated{raw: d, t: t})
		}
	}
	sort.Slice(keep, func(i, j int) bool { return keep[i].t.Before(keep[j].t) })
	out := make([]string, len(keep))
	for i, d := range keep {
		out[i] = d.raw
	}
	return out
}
