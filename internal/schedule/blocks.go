package schedule

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrBlockDuration    = errors.New("block duration must be positive")
)

// BlockMinutes is the occupancy granularity for court and instructor
// schedules.
const BlockMinutes = 30

// PreClassBuffer is blocked ahead of every confirmed class for setup and
// the previous group clearing the court.
const PreClassBuffer = 30 * time.Minute

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a range with basic validation.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect:
// a.Start < b.End && b.Start < a.End.
func (a TimeRange) Overlaps(b TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapsAny reports whether tr intersects any of existing and returns
// the conflicting ranges.
func OverlapsAny(tr TimeRange, existing []TimeRange) (bool, []TimeRange) {
	var conflicts []TimeRange
	for _, other := range existing {
		if tr.Overlaps(other) {
			conflicts = append(conflicts, other)
		}
	}
	return len(conflicts) > 0, conflicts
}

// OccupancyRange is the window a confirmed class blocks on its court and
// instructor: the pre-class buffer plus the full class duration.
func OccupancyRange(startsAt, endsAt time.Time) TimeRange {
	return TimeRange{Start: startsAt.Add(-PreClassBuffer), End: endsAt}
}

// SplitToBlocks cuts a range into fixed-duration blocks. The range end is
// rounded up to a whole block so a 75-minute class still blocks 90 minutes.
func SplitToBlocks(tr TimeRange, blockDuration time.Duration) ([]TimeRange, error) {
	if blockDuration <= 0 {
		return nil, ErrBlockDuration
	}
	if !tr.End.After(tr.Start) {
		return []TimeRange{}, nil
	}

	var blocks []TimeRange
	for cur := tr.Start; cur.Before(tr.End); cur = cur.Add(blockDuration) {
		blocks = append(blocks, TimeRange{Start: cur, End: cur.Add(blockDuration)})
	}
	return blocks, nil
}

// SplitRange cuts a working window into class-length ranges separated by
// gap, dropping a trailing remainder shorter than slotDuration. The
// generator passes PreClassBuffer as the gap so adjacent classes of one
// instructor leave room for each other's occupancy and can all confirm.
func SplitRange(tr TimeRange, slotDuration, gap time.Duration) ([]TimeRange, error) {
	if slotDuration <= 0 || gap < 0 {
		return nil, ErrBlockDuration
	}

	var slots []TimeRange
	for cur := tr.Start; !cur.Add(slotDuration).After(tr.End); cur = cur.Add(slotDuration + gap) {
		slots = append(slots, TimeRange{Start: cur, End: cur.Add(slotDuration)})
	}
	return slots, nil
}
