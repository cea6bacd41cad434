package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// Run modes.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// RunStats summarizes one sync run for the operator.
type RunStats struct {
	RunID        string
	Mode         string
	Cutoff       string
	TotalCount   int
	PagesFetched int
	PagesFailed  int
	Excluded     int
	Dropped      int
	Indexed      int
	Failed       int
	StartedAt    time.Time
	Duration     time.Duration
}

func newRunStats(mode, cutoff string) *RunStats {
	return &RunStats{
		RunID:     uuid.NewString(),
		Mode:      mode,
		Cutoff:    cutoff,
		StartedAt: time.Now(),
	}
}

func (s *RunStats) finish() {
	s.Duration = time.Since(s.StartedAt)
}
