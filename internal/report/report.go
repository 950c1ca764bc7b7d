// Package report filters orders by rolling time windows and aggregates
// revenue for the dashboard charts.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/enum"
	"github.com/shopspring/decimal"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

// Summary holds the headline figures for a filtered set of orders.
type Summary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int             `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// Bucket is one named aggregation group on the revenue chart.
type Bucket struct {
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
}

// WindowStart computes the inclusive lower bound of a timeframe window.
//
//	today → local midnight of now's day
//	week  → exactly 7×24h before now
//	month → one calendar month before now, day clamped to the last valid
//	        day of that month (e.g. Mar 31 → Feb 28/29)
func WindowStart(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case enum.TimeframeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case enum.TimeframeWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case enum.TimeframeMonth:
		return monthBefore(now), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeframe, timeframe)
}

// monthBefore subtracts one calendar month without the normalization
// time.AddDate does (which would turn Mar 31 − 1mo into Mar 3).
func monthBefore(now time.Time) time.Time {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prev := firstOfMonth.AddDate(0, -1, 0)

	day := now.Day()
	if last := daysIn(prev.Year(), prev.Month(), now.Location()); day > last {
		day = last
	}
	return time.Date(prev.Year(), prev.Month(), day,
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// FilterByTimeframe returns the orders created within the timeframe window,
// inclusive at both ends, preserving input order.
func FilterByTimeframe(orders []domain.Order, timeframe string, now time.Time) ([]domain.Order, error) {
	start, err := WindowStart(timeframe, now)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.CreatedAt.Before(start) || o.CreatedAt.After(now) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}

// Summarize computes revenue, order count, and average order value over an
// already-filtered set of orders. The average is 0 when the set is empty.
func Summarize(orders []domain.Order) Summary {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}

	avg := decimal.Zero
	if len(orders) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	return Summary{
		TotalRevenue:      total.Round(2),
		TotalOrders:       len(orders),
		AverageOrderValue: avg,
	}
}

// Bucketize groups orders by a timeframe-dependent label derived from each
// order's creation time and sums revenue per label. Buckets come back in
// first-seen order, not chronological order: that is what the dashboard
// chart historically rendered, and reordering here would silently change it.
func Bucketize(orders []domain.Order, timeframe string) ([]Bucket, error) {
	label, err := labelFunc(timeframe)
	if err != nil {
		return nil, err
	}

	buckets := make([]Bucket, 0)
	index := make(map[string]int)
	for _, o := range orders {
		key := label(o.CreatedAt)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Label: key})
		}
		buckets[i].Revenue = buckets[i].Revenue.Add(o.Total)
	}
	return buckets, nil
}

func labelFunc(timeframe string) (func(time.Time) string, error) {
	switch timeframe {
	case enum.TimeframeToday:
		// Hour of day, not zero-padded: "8:00", "20:00".
		return func(t time.Time) string { return strconv.Itoa(t.Hour()) + ":00" }, nil
	case enum.TimeframeWeek:
		return func(t time.Time) string { return t.Format("Mon") }, nil
	case enum.TimeframeMonth:
		return func(t time.Time) string { return t.Format("Jan 2") }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTimeframe, timeframe)
}
