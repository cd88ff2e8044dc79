package domain

import (
	"time"

	eventsdomain "tempo/internal/modules/events/domain"
)

const dayLayout = "2006-01-02"

// Heatmap is a fixed-shape day-by-hour activity matrix over a trailing
// window. Days carries one label per row, oldest first; Counts[i][h] is the
// event count for Days[i] at hour h. Empty days still occupy a zero row.
type Heatmap struct {
	Days   []string
	Counts [][]int
}

// BuildHeatmap lays out a days×24 zero matrix ending on the day of `now` and
// fills it from the aggregated cells. Cells outside the window are ignored.
func BuildHeatmap(now time.Time, days int, cells []eventsdomain.HeatmapCell) Heatmap {
	if days <= 0 {
		days = 1
	}
	heatmap := Heatmap{
		Days:   make([]string, days),
		Counts: make([][]int, days),
	}
	index := make(map[string]int, days)
	start := now.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dayLayout)
		heatmap.Days[i] = day
		heatmap.Counts[i] = make([]int, 24)
		index[day] = i
	}
	for _, cell := range cells {
		row, ok := index[cell.Day]
		if !ok || cell.Hour < 0 || cell.Hour > 23 {
			continue
		}
		heatmap.Counts[row][cell.Hour] += cell.Count
	}
	return heatmap
}

// WindowStart is the first instant included in a trailing window of whole
// calendar days ending on the day of `now`.
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 1
	}
	day := now.AddDate(0, 0, -(days - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}
