package domain

// HeatmapCell is one populated day×hour bucket from the event log. Days with
// no events produce no cells; zero-filling is the analytics module's job.
type HeatmapCell struct {
	Day   string // YYYY-MM-DD, local calendar
	Hour  int    // 0..23
	Count int
}
