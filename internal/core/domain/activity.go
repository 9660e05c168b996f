package domain

import "time"

const (
	// ActivityWeeks and ActivityDaysPerWeek fix the grid shape: 52 weeks of
	// 7 days, 364 day buckets total, ending on "today".
	ActivityWeeks       = 52
	ActivityDaysPerWeek = 7
)

// ActivityDay is one bucket of the activity grid: a calendar date at local
// midnight, the orders placed that day, and their count.
type ActivityDay struct {
	Date   time.Time `json:"date"`
	Count  int       `json:"count"`
	Orders []Order   `json:"orders,omitempty"`
}

// BuildActivityGrid buckets the order list into 52 weeks of 7 days, oldest
// week first, with the final bucket equal to today at local midnight. An
// order counts toward a bucket when its time, truncated to local midnight in
// today's location, equals the bucket date exactly. The grid is recomputed
// from scratch on every call; buckets hold no identity across calls.
func BuildActivityGrid(orders []Order, today time.Time) [][]ActivityDay {
	loc := today.Location()
	end := atMidnight(today, loc)

	byDay := make(map[time.Time][]Order, len(orders))
	for _, o := range orders {
		day := atMidnight(o.OrderTime, loc)
		byDay[day] = append(byDay[day], o)
	}

	grid := make([][]ActivityDay, ActivityWeeks)
	for week := 0; week < ActivityWeeks; week++ {
		days := make([]ActivityDay, ActivityDaysPerWeek)
		for i := 0; i < ActivityDaysPerWeek; i++ {
			daysAgo := (ActivityWeeks-1-week)*ActivityDaysPerWeek + (ActivityDaysPerWeek - 1 - i)
			date := end.AddDate(0, 0, -daysAgo)
			matched := byDay[date]
			days[i] = ActivityDay{Date: date, Count: len(matched), Orders: matched}
		}
		grid[week] = days
	}
	return grid
}

// ActivityLevel maps a daily order count to a display intensity from 0 to 4.
// Independent of any rendering concern.
func ActivityLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 6:
		return 3
	default:
		return 4
	}
}

// atMidnight truncates t to local midnight in loc.
func atMidnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
