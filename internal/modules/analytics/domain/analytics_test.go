package domain

import (
	"testing"
	"time"

	eventsdomain "tempo/internal/modules/events/domain"
)

func interruption(elapsed int, severity string) eventsdomain.Event {
	return eventsdomain.Event{
		Kind:           eventsdomain.KindInterruptionDetected,
		ElapsedSeconds: elapsed,
		Metadata:       map[string]any{"severity": severity},
	}
}

func TestInterruptionPatternPhases(t *testing.T) {
	t.Parallel()

	// Planned 1500s: early < 495, middle < 990, late >= 990.
	events := []eventsdomain.Event{
		interruption(100, "low"),
		interruption(494, "medium"),
		interruption(495, "medium"),
		interruption(989, "high"),
		interruption(990, "high"),
		interruption(1400, "high"),
	}
	pattern := BuildInterruptionPattern("s1", 1500, events)

	if pattern.Total != 6 {
		t.Fatalf("total = %d, want 6", pattern.Total)
	}
	if pattern.Phases.Early != 2 || pattern.Phases.Middle != 2 || pattern.Phases.Late != 2 {
		t.Fatalf("phases = %+v, want 2/2/2", pattern.Phases)
	}
	if pattern.Severity["low"] != 1 || pattern.Severity["medium"] != 2 || pattern.Severity["high"] != 3 {
		t.Fatalf("severity histogram = %v", pattern.Severity)
	}
	if pattern.MeanGapSeconds == nil {
		t.Fatal("mean gap should be defined for six interruptions")
	}
	if got := *pattern.MeanGapSeconds; got != 260 {
		t.Fatalf("mean gap = %f, want 260 ((1400-100)/5)", got)
	}
}

func TestInterruptionPatternMeanGapUndefinedBelowTwo(t *testing.T) {
	t.Parallel()

	if pattern := BuildInterruptionPattern("s1", 1500, nil); pattern.MeanGapSeconds != nil {
		t.Fatal("mean gap must be nil with no interruptions")
	}
	single := []eventsdomain.Event{interruption(60, "low")}
	if pattern := BuildInterruptionPattern("s1", 1500, single); pattern.MeanGapSeconds != nil {
		t.Fatal("mean gap must be nil with one interruption")
	}
}

func TestInterruptionPatternDefaultPlan(t *testing.T) {
	t.Parallel()

	// Unknown plan falls back to 1800s: 900 lands in middle, not late.
	events := []eventsdomain.Event{interruption(900, "low")}
	pattern := BuildInterruptionPattern("s1", 0, events)
	if pattern.PlannedSeconds != DefaultPlannedSeconds {
		t.Fatalf("planned = %d, want default %d", pattern.PlannedSeconds, DefaultPlannedSeconds)
	}
	if pattern.Phases.Middle != 1 {
		t.Fatalf("phases = %+v, want the single interruption in middle", pattern.Phases)
	}
}

func TestQualityStatsBuckets(t *testing.T) {
	t.Parallel()

	stats := BuildQualityStats([]int{0, 0, 0, 1, 1, 2, 3, 3, 4, 5})
	if stats.Deep != 3 || stats.Moderate != 3 || stats.Distracted != 4 {
		t.Fatalf("buckets = %d/%d/%d, want 3/3/4", stats.Deep, stats.Moderate, stats.Distracted)
	}
	if stats.Total != 10 {
		t.Fatalf("total = %d, want 10", stats.Total)
	}
	if stats.Summary == "" {
		t.Fatal("summary must not be empty")
	}
}

func TestQualityStatsEmpty(t *testing.T) {
	t.Parallel()

	stats := BuildQualityStats(nil)
	if stats.Total != 0 || stats.Deep != 0 || stats.Moderate != 0 || stats.Distracted != 0 {
		t.Fatalf("empty stats = %+v, want all zero", stats)
	}
	if stats.Summary == "" {
		t.Fatal("empty stats still carry a summary")
	}
}

func TestHeatmapZeroFilledWithoutEvents(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	heatmap := BuildHeatmap(now, 14, nil)

	if len(heatmap.Days) != 14 || len(heatmap.Counts) != 14 {
		t.Fatalf("shape = %dx%d days, want 14", len(heatmap.Days), len(heatmap.Counts))
	}
	if heatmap.Days[0] != "2026-02-25" || heatmap.Days[13] != "2026-03-10" {
		t.Fatalf("window = %s..%s, want 2026-02-25..2026-03-10", heatmap.Days[0], heatmap.Days[13])
	}
	for i, row := range heatmap.Counts {
		if len(row) != 24 {
			t.Fatalf("row %d has %d hours, want 24", i, len(row))
		}
		for hour, count := range row {
			if count != 0 {
				t.Fatalf("cell [%d][%d] = %d, want 0", i, hour, count)
			}
		}
	}
}

func TestHeatmapPlacesCells(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	cells := []eventsdomain.HeatmapCell{
		{Day: "2026-03-09", Hour: 9, Count: 4},
		{Day: "2026-03-10", Hour: 14, Count: 2},
		{Day: "2025-12-01", Hour: 3, Count: 7}, // outside the window
		{Day: "2026-03-10", Hour: 99, Count: 1},
	}
	heatmap := BuildHeatmap(now, 7, cells)

	if heatmap.Counts[5][9] != 4 {
		t.Fatalf("yesterday 09h = %d, want 4", heatmap.Counts[5][9])
	}
	if heatmap.Counts[6][14] != 2 {
		t.Fatalf("today 14h = %d, want 2", heatmap.Counts[6][14])
	}
	total := 0
	for _, row := range heatmap.Counts {
		for _, count := range row {
			total += count
		}
	}
	if total != 6 {
		t.Fatalf("total = %d, want 6 (stale and invalid cells dropped)", total)
	}
}

func TestDailyTrendZeroFills(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	totals := map[string]DayTotal{
		"2026-03-08": {Day: "2026-03-08", ActiveSeconds: 3000, Sessions: 2},
	}
	trend := BuildDailyTrend(now, 3, totals)

	if len(trend) != 3 {
		t.Fatalf("rows = %d, want 3", len(trend))
	}
	if trend[0].Day != "2026-03-08" || trend[0].ActiveSeconds != 3000 {
		t.Fatalf("first row = %+v, want 2026-03-08 with 3000s", trend[0])
	}
	if trend[1].ActiveSeconds != 0 || trend[2].ActiveSeconds != 0 {
		t.Fatal("days without sessions must report zero")
	}
}

func TestHourlyProfileAlwaysTwentyFourRows(t *testing.T) {
	t.Parallel()

	profile := BuildHourlyProfile(map[int]HourTotal{9: {Hour: 9, ActiveSeconds: 1500, Sessions: 1}})
	if len(profile) != 24 {
		t.Fatalf("rows = %d, want 24", len(profile))
	}
	if profile[9].ActiveSeconds != 1500 {
		t.Fatalf("hour 9 = %d, want 1500", profile[9].ActiveSeconds)
	}
	if profile[10].ActiveSeconds != 0 {
		t.Fatalf("hour 10 = %d, want 0", profile[10].ActiveSeconds)
	}
}

func TestCompletionRateGuardsEmptyWindow(t *testing.T) {
	t.Parallel()

	if rate := Rate(0, 0); rate.Completed != 0 {
		t.Fatalf("empty window rate = %f, want 0", rate.Completed)
	}
	if rate := Rate(3, 4); rate.Completed != 0.75 {
		t.Fatalf("rate = %f, want 0.75", rate.Completed)
	}
}
