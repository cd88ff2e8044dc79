package dto

type InterruptionPatternOutput struct {
	SessionID      string
	PlannedSeconds int
	Total          int
	Early          int
	Middle         int
	Late           int
	MeanGapSeconds *float64
	Severity       map[string]int
}

type QualityStatsOutput struct {
	Deep       int
	Moderate   int
	Distracted int
	Total      int
	Summary    string
}

type HeatmapInput struct {
	Days  int
	Kinds []string
}

type HeatmapOutput struct {
	Days   []string
	Counts [][]int
}

type TrendInput struct {
	Days int
}

type DayTotalOutput struct {
	Day           string
	ActiveSeconds int
	Sessions      int
}

type HourTotalOutput struct {
	Hour          int
	ActiveSeconds int
	Sessions      int
}

type CompletionRateOutput struct {
	Completed float64
	Total     int
}
