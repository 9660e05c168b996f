package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActivityGrid_Shape(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	grid := BuildActivityGrid(nil, today)

	require.Len(t, grid, ActivityWeeks)
	for _, week := range grid {
		require.Len(t, week, ActivityDaysPerWeek)
	}
}

func TestBuildActivityGrid_EndsAtLocalMidnightToday(t *testing.T) {
	today := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)

	grid := BuildActivityGrid(nil, today)

	last := grid[ActivityWeeks-1][ActivityDaysPerWeek-1]
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), last.Date)

	first := grid[0][0]
	wantFirst := last.Date.AddDate(0, 0, -(ActivityWeeks*ActivityDaysPerWeek - 1))
	assert.Equal(t, wantFirst, first.Date)
}

func TestBuildActivityGrid_DatesAreConsecutive(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	grid := BuildActivityGrid(nil, today)

	var prev time.Time
	for w, week := range grid {
		for i, day := range week {
			if w == 0 && i == 0 {
				prev = day.Date
				continue
			}
			assert.Equal(t, prev.AddDate(0, 0, 1), day.Date)
			prev = day.Date
		}
	}
}

func TestBuildActivityGrid_BucketsOrdersByLocalDay(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	orders := []Order{
		orderAt("morning", "Ana", time.Date(2026, 9, 1, 0, 1, 0, 0, time.UTC)),
		orderAt("evening", "Ben", time.Date(2026, 9, 1, 23, 58, 0, 0, time.UTC)),
		orderAt("lastweek", "Ana", time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)),
		orderAt("ancient", "Ben", today.AddDate(-2, 0, 0)),
	}

	grid := BuildActivityGrid(orders, today)

	last := grid[ActivityWeeks-1][ActivityDaysPerWeek-1]
	require.Equal(t, 2, last.Count)
	assert.Len(t, last.Orders, 2)

	var total int
	for _, week := range grid {
		for _, day := range week {
			total += day.Count
		}
	}
	// The two-year-old order falls outside the window entirely.
	assert.Equal(t, 3, total)
}

func TestActivityLevel_Thresholds(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1}, {2, 1},
		{3, 2}, {4, 2},
		{5, 3}, {6, 3},
		{7, 4}, {50, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ActivityLevel(tc.count), "count=%d", tc.count)
	}
}
