package pipeline

import "time"

// RunStats describes a finished (or dry) run for the summary report.
type RunStats struct {
	Slides        int
	TotalDuration float64 // Seconds, sum of the probed audio durations.
	OutputBytes   int64
	Elapsed       time.Duration // Encode wall time; zero for dry runs.
	DryRun        bool
}

// AverageSlide returns the mean slide length in seconds.
func (s *RunStats) AverageSlide() float64 {
	if s.Slides == 0 {
		return 0
	}
	return s.TotalDuration / float64(s.Slides)
}
