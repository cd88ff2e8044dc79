package domain

import "fmt"

// Quality buckets by interruption count: deep focus had none, moderate one or
// two, distracted three or more.
const (
	moderateMin   = 1
	distractedMin = 3
)

type QualityStats struct {
	Deep       int
	Moderate   int
	Distracted int
	Total      int
	Summary    string
}

// BuildQualityStats buckets the given per-session interruption counts and
// attaches a summary keyed on the dominant bucket's share.
func BuildQualityStats(interruptionCounts []int) QualityStats {
	stats := QualityStats{Total: len(interruptionCounts)}
	for _, count := range interruptionCounts {
		switch {
		case count >= distractedMin:
			stats.Distracted++
		case count >= moderateMin:
			stats.Moderate++
		default:
			stats.Deep++
		}
	}
	stats.Summary = summarize(stats)
	return stats
}

func summarize(stats QualityStats) string {
	if stats.Total == 0 {
		return "No sessions recorded yet."
	}
	share := func(n int) int { return n * 100 / stats.Total }
	switch {
	case stats.Deep >= stats.Moderate && stats.Deep >= stats.Distracted:
		return fmt.Sprintf("Deep focus dominates: %d%% of sessions ran uninterrupted.", share(stats.Deep))
	case stats.Distracted > stats.Deep && stats.Distracted >= stats.Moderate:
		return fmt.Sprintf("Distraction dominates: %d%% of sessions had three or more interruptions.", share(stats.Distracted))
	default:
		return fmt.Sprintf("Mostly moderate focus: %d%% of sessions had one or two interruptions.", share(stats.Moderate))
	}
}
