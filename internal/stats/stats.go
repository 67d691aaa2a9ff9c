// Package stats derives dashboard statistics from the reservation
// collection. Everything here is a pure function of the reservations, the
// selected period and the reference time.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
)

// RevenuePerGuest is the flat per-guest amount used for revenue estimates.
const RevenuePerGuest = 85.0

// maxPopularTimes caps the popular-times histogram.
const maxPopularTimes = 8

const dateLayout = "2006-01-02"

// Period selects the trailing window and the bucketing of the series.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ErrInvalidPeriod is returned by ParsePeriod for unknown selectors.
var ErrInvalidPeriod = errors.New("invalid period")

// ParsePeriod converts a selector into a Period. An empty selector means
// PeriodWeek.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodWeek, nil
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// bucket is one entry of the period series before it is rendered.
type bucket struct {
	label string
	match func(d time.Time) bool
}

// Compute builds the statistics for period relative to now. Dates are
// compared as calendar days in now's location; reservations whose date
// cannot be parsed are ignored for everything but the today count.
func Compute(reservations []model.Reservation, period Period, now time.Time) model.ReservationStats {
	loc := now.Location()
	today := startOfDay(now)
	todayStr := now.Format(dateLayout)

	from := windowStart(period, today)

	filtered := make([]model.Reservation, 0, len(reservations))
	dates := make([]time.Time, 0, len(reservations))
	out := model.ReservationStats{
		PopularTimes: []model.TimeCount{},
		DailyStats:   []model.PeriodStat{},
	}

	for _, r := range reservations {
		if r.Date == todayStr {
			out.TodayReservations++
		}
		d, err := time.ParseInLocation(dateLayout, r.Date, loc)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(today) {
			continue
		}
		filtered = append(filtered, r)
		dates = append(dates, d)
	}

	for _, b := range buckets(period, today) {
		stat := model.PeriodStat{Date: b.label}
		for i, r := range filtered {
			if b.match(dates[i]) {
				stat.Reservations++
				stat.Revenue += revenue(r)
			}
		}
		out.DailyStats = append(out.DailyStats, stat)
	}

	out.PopularTimes = popularTimes(filtered)

	guests := 0
	for _, r := range filtered {
		guests += r.Guests
		out.MonthlyRevenue += revenue(r)
	}
	out.TotalReservations = len(filtered)
	out.WeeklyReservations = len(filtered)
	if len(filtered) > 0 {
		avg := float64(guests) / float64(len(filtered))
		out.AveragePartySize = math.Round(avg*10) / 10
	}
	return out
}

func revenue(r model.Reservation) float64 {
	return float64(r.Guests) * RevenuePerGuest
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// windowStart returns the first calendar day inside the trailing window.
func windowStart(period Period, today time.Time) time.Time {
	switch period {
	case PeriodMonth:
		return today.AddDate(0, 0, -29)
	case PeriodYear:
		return today.AddDate(-1, 0, 1)
	default:
		return today.AddDate(0, 0, -6)
	}
}

func buckets(period Period, today time.Time) []bucket {
	switch period {
	case PeriodMonth:
		return weekBuckets(today)
	case PeriodYear:
		return monthBuckets(today)
	default:
		return dayBuckets(today)
	}
}

// dayBuckets covers the last seven days, oldest first.
func dayBuckets(today time.Time) []bucket {
	out := make([]bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		out = append(out, bucket{
			label: day.Weekday().String()[:3],
			match: func(d time.Time) bool { return d.Equal(day) },
		})
	}
	return out
}

// weekBuckets covers four 7-day spans ending today. The two oldest days of
// the 30-day window fall before the first span.
func weekBuckets(today time.Time) []bucket {
	out := make([]bucket, 0, 4)
	for i := 3; i >= 0; i-- {
		start := today.AddDate(0, 0, -(7*i + 6))
		end := today.AddDate(0, 0, -7*i)
		out = append(out, bucket{
			label: fmt.Sprintf("Week %d", 4-i),
			match: func(d time.Time) bool { return !d.Before(start) && !d.After(end) },
		})
	}
	return out
}

// monthBuckets covers the current calendar month and the eleven before it.
func monthBuckets(today time.Time) []bucket {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	out := make([]bucket, 0, 12)
	for i := 11; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		out = append(out, bucket{
			label: month.Month().String()[:3],
			match: func(d time.Time) bool {
				return d.Year() == month.Year() && d.Month() == month.Month()
			},
		})
	}
	return out
}

// popularTimes groups by hour in first-seen order and keeps the busiest
// hours. Ties keep their first-seen order.
func popularTimes(reservations []model.Reservation) []model.TimeCount {
	counts := make([]model.TimeCount, 0)
	index := make(map[string]int)
	for _, r := range reservations {
		hour, _, _ := strings.Cut(r.Time, ":")
		key := hour + ":00"
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, model.TimeCount{Time: key})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > maxPopularTimes {
		counts = counts[:maxPopularTimes]
	}
	return counts
}
