package model

import "time"

// Snapshot is the finalized result of one collection run. It is read-only once
// returned by the aggregator.
type Snapshot struct {
	RunID    string
	TakenAt  time.Time
	Duration time.Duration
	Records  []*CoinRecord // universe order
}

// UnavailableCount sums unavailable cells over all records.
func (s *Snapshot) UnavailableCount() int {
	n := 0
	for _, r := range s.Records {
		n += r.UnavailableCount()
	}
	return n
}
