// Package calendar provides trading day arithmetic over the exchange
// holiday list.
package calendar

import (
	"context"
	"time"

	"stockfetch/pkg/nse"
)

// dateKey is a comparable year/month/day form used for holiday membership.
type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{year: y, month: m, day: d}
}

// Calendar answers trading day questions for one market segment.
type Calendar struct {
	segment  string
	holidays map[dateKey]struct{}
}

// New builds a Calendar for segment (for example "FO" or "CM") from a fetched
// holiday calendar. Holiday entries that fail to parse are skipped.
func New(cal nse.HolidayCalendar, segment string) *Calendar {
	holidays := make(map[dateKey]struct{})
	for _, h := range cal[segment] {
		t, err := nse.ParseExpiryDate(h.TradingDate)
		if err != nil {
			continue
		}
		holidays[keyOf(t)] = struct{}{}
	}
	return &Calendar{segment: segment, holidays: holidays}
}

// Load fetches the trading holiday list and builds a Calendar for segment.
func Load(ctx context.Context, client *nse.Client, segment string) (*Calendar, error) {
	cal, err := client.GetHolidays(ctx, nse.HolidayTrading)
	if err != nil {
		return nil, err
	}
	return New(cal, segment), nil
}

// IsTradingDay reports whether t falls on a weekday that is not a holiday.
func (c *Calendar) IsTradingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[keyOf(t)]
	return !holiday
}

// PastTradingDate walks back from the day before `from` until daysBack
// trading days have been counted, skipping weekends and holidays. A
// daysBack of zero returns `from` unchanged.
func (c *Calendar) PastTradingDate(from time.Time, daysBack int) time.Time {
	cursor := from
	for remaining := daysBack; remaining > 0; {
		cursor = cursor.AddDate(0, 0, -1)
		if !c.IsTradingDay(cursor) {
			continue
		}
		remaining--
	}
	return cursor
}

// NextTradingDate walks forward from the day after `from` to the nearest
// trading day.
func (c *Calendar) NextTradingDate(from time.Time) time.Time {
	cursor := from.AddDate(0, 0, 1)
	for !c.IsTradingDay(cursor) {
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor
}
