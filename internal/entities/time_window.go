package entities

import "time"

// TimeWindow is a time interval carried in UTC. End is exclusive for slot
// arithmetic, but overlap and containment use inclusive bounds on both ends:
// two windows that merely touch at an endpoint count as overlapping. That is
// the behavior the dealership has always run with, so it stays.
type TimeWindow struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start.UTC(), End: end.UTC()}
}

// Overlaps reports whether w and other share at least one instant under the
// inclusive rule: w.Start <= other.End && w.End >= other.Start.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return !w.Start.After(other.End) && !w.End.Before(other.Start)
}

// Within reports whether w lies fully inside other, inclusive on both ends.
func (w TimeWindow) Within(other TimeWindow) bool {
	return !w.Start.Before(other.Start) && !w.End.After(other.End)
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
