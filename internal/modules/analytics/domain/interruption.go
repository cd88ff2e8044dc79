package domain

import eventsdomain "tempo/internal/modules/events/domain"

// DefaultPlannedSeconds stands in for the planned duration when the session
// record is missing or carries no plan. Thirty minutes keeps the phase
// boundaries meaningful for sessions that predate duration tracking.
const DefaultPlannedSeconds = 1800

// Phase boundaries as fractions of the planned duration.
const (
	earlyPhaseEnd  = 0.33
	middlePhaseEnd = 0.66
)

// PhaseCounts partitions a session's interruptions by when they landed
// relative to the planned duration.
type PhaseCounts struct {
	Early  int
	Middle int
	Late   int
}

// InterruptionPattern summarizes the interruption stream of one session.
// MeanGapSeconds is nil when fewer than two interruptions exist; a mean over
// one point would be noise presented as signal.
type InterruptionPattern struct {
	SessionID      string
	PlannedSeconds int
	Total          int
	Phases         PhaseCounts
	MeanGapSeconds *float64
	Severity       map[string]int
}

// BuildInterruptionPattern derives the pattern from interruption events
// ordered by elapsed offset. plannedSeconds at or below zero falls back to
// DefaultPlannedSeconds.
func BuildInterruptionPattern(sessionID string, plannedSeconds int, events []eventsdomain.Event) InterruptionPattern {
	if plannedSeconds <= 0 {
		plannedSeconds = DefaultPlannedSeconds
	}
	pattern := InterruptionPattern{
		SessionID:      sessionID,
		PlannedSeconds: plannedSeconds,
		Total:          len(events),
		Severity:       map[string]int{},
	}
	for _, event := range events {
		fraction := float64(event.ElapsedSeconds) / float64(plannedSeconds)
		switch {
		case fraction < earlyPhaseEnd:
			pattern.Phases.Early++
		case fraction < middlePhaseEnd:
			pattern.Phases.Middle++
		default:
			pattern.Phases.Late++
		}
		if severity, ok := event.Metadata["severity"].(string); ok && severity != "" {
			pattern.Severity[severity]++
		}
	}
	if len(events) >= 2 {
		gapSum := 0
		for i := 1; i < len(events); i++ {
			gapSum += events[i].ElapsedSeconds - events[i-1].ElapsedSeconds
		}
		mean := float64(gapSum) / float64(len(events)-1)
		pattern.MeanGapSeconds = &mean
	}
	return pattern
}
