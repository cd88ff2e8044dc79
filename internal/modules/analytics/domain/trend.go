package domain

import "time"

// DayTotal is one row of the daily productivity trend.
type DayTotal struct {
	Day           string
	ActiveSeconds int
	Sessions      int
}

// BuildDailyTrend zero-fills a trailing window of calendar days and overlays
// the per-day totals. Days without sessions report zero, not absence.
func BuildDailyTrend(now time.Time, days int, totals map[string]DayTotal) []DayTotal {
	if days <= 0 {
		days = 1
	}
	trend := make([]DayTotal, days)
	start := now.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dayLayout)
		trend[i] = DayTotal{Day: day}
		if total, ok := totals[day]; ok {
			trend[i].ActiveSeconds = total.ActiveSeconds
			trend[i].Sessions = total.Sessions
		}
	}
	return trend
}

// HourTotal is one row of the hour-of-day productivity profile.
type HourTotal struct {
	Hour          int
	ActiveSeconds int
	Sessions      int
}

// BuildHourlyProfile zero-fills all 24 hours and overlays the totals.
func BuildHourlyProfile(totals map[int]HourTotal) []HourTotal {
	profile := make([]HourTotal, 24)
	for hour := 0; hour < 24; hour++ {
		profile[hour] = HourTotal{Hour: hour}
		if total, ok := totals[hour]; ok {
			profile[hour].ActiveSeconds = total.ActiveSeconds
			profile[hour].Sessions = total.Sessions
		}
	}
	return profile
}

// CompletionRate is the share of completed sessions over a window.
type CompletionRate struct {
	Completed float64
	Total     int
}

// Rate computes completed/total guarding the empty window.
func Rate(completed, total int) CompletionRate {
	rate := CompletionRate{Total: total}
	if total > 0 {
		rate.Completed = float64(completed) / float64(total)
	}
	return rate
}
