package schedule

import (
	"testing"
	"time"
)

func mustRange(t *testing.T, startHour, startMin, endHour, endMin int) TimeRange {
	t.Helper()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tr, err := NewTimeRange(
		day.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
		day.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
	)
	if err != nil {
		t.Fatalf("NewTimeRange: %v", err)
	}
	return tr
}

func TestNewTimeRange_Invalid(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"zero start", time.Time{}, now},
		{"zero end", now, time.Time{}},
		{"end before start", now, now.Add(-time.Hour)},
		{"empty", now, now},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTimeRange(tc.start, tc.end); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"disjoint", mustRange(t, 10, 0, 11, 0), mustRange(t, 12, 0, 13, 0), false},
		{"touching ends", mustRange(t, 10, 0, 11, 0), mustRange(t, 11, 0, 12, 0), false},
		{"partial", mustRange(t, 10, 0, 11, 30), mustRange(t, 11, 0, 12, 0), true},
		{"contained", mustRange(t, 10, 0, 13, 0), mustRange(t, 11, 0, 12, 0), true},
		{"identical", mustRange(t, 10, 0, 11, 0), mustRange(t, 10, 0, 11, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverlapsAny(t *testing.T) {
	existing := []TimeRange{
		mustRange(t, 9, 0, 10, 0),
		mustRange(t, 12, 0, 13, 30),
	}

	busy, conflicts := OverlapsAny(mustRange(t, 13, 0, 14, 30), existing)
	if !busy {
		t.Fatalf("expected overlap")
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}

	busy, conflicts = OverlapsAny(mustRange(t, 10, 0, 12, 0), existing)
	if busy {
		t.Fatalf("expected no overlap, got conflicts %v", conflicts)
	}
}

func TestOccupancyRange_IncludesBuffer(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	occ := OccupancyRange(start, end)
	if !occ.Start.Equal(start.Add(-PreClassBuffer)) {
		t.Fatalf("occupancy start = %v, want %v", occ.Start, start.Add(-PreClassBuffer))
	}
	if !occ.End.Equal(end) {
		t.Fatalf("occupancy end = %v, want %v", occ.End, end)
	}
}

func TestSplitToBlocks(t *testing.T) {
	// 09:30–11:30 in 30-minute blocks: exactly four.
	blocks, err := SplitToBlocks(mustRange(t, 9, 30, 11, 30), 30*time.Minute)
	if err != nil {
		t.Fatalf("SplitToBlocks: %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	for i := 1; i < len(blocks); i++ {
		if !blocks[i].Start.Equal(blocks[i-1].End) {
			t.Fatalf("blocks not consecutive at %d", i)
		}
	}

	// A 75-minute window still blocks whole 30-minute units.
	blocks, err = SplitToBlocks(mustRange(t, 9, 0, 10, 15), 30*time.Minute)
	if err != nil {
		t.Fatalf("SplitToBlocks: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks for 75 minutes, got %d", len(blocks))
	}
	if !blocks[2].End.Equal(mustRange(t, 10, 0, 10, 30).End) {
		t.Fatalf("last block end = %v", blocks[2].End)
	}
}

func TestSplitToBlocks_InvalidDuration(t *testing.T) {
	if _, err := SplitToBlocks(mustRange(t, 9, 0, 10, 0), 0); err != ErrBlockDuration {
		t.Fatalf("expected ErrBlockDuration, got %v", err)
	}
}

func TestSplitRange_DropsTail(t *testing.T) {
	// 09:00–21:00 into back-to-back 90-minute classes: eight, no
	// remainder used.
	slots, err := SplitRange(mustRange(t, 9, 0, 21, 0), 90*time.Minute, 0)
	if err != nil {
		t.Fatalf("SplitRange: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 class windows, got %d", len(slots))
	}

	// 09:00–10:00 cannot fit a 90-minute class.
	slots, err = SplitRange(mustRange(t, 9, 0, 10, 0), 90*time.Minute, 0)
	if err != nil {
		t.Fatalf("SplitRange: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no windows, got %d", len(slots))
	}
}

func TestSplitRange_Gap(t *testing.T) {
	// 09:00–13:00 with 90-minute classes and a 30-minute gap:
	// 09:00–10:30 and 11:00–12:30. A third class would need 13:00–14:30.
	slots, err := SplitRange(mustRange(t, 9, 0, 13, 0), 90*time.Minute, 30*time.Minute)
	if err != nil {
		t.Fatalf("SplitRange: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 class windows, got %d", len(slots))
	}
	if !slots[1].Start.Equal(slots[0].End.Add(30 * time.Minute)) {
		t.Fatalf("second class starts %v, want 30m after %v", slots[1].Start, slots[0].End)
	}

	// The gap keeps the pre-class buffer of one class clear of the
	// previous class on the same resources.
	occ0 := OccupancyRange(slots[0].Start, slots[0].End)
	occ1 := OccupancyRange(slots[1].Start, slots[1].End)
	if occ0.Overlaps(occ1) {
		t.Fatalf("adjacent occupancy windows overlap: %v / %v", occ0, occ1)
	}

	if _, err := SplitRange(mustRange(t, 9, 0, 13, 0), 90*time.Minute, -time.Minute); err != ErrBlockDuration {
		t.Fatalf("negative gap: expected ErrBlockDuration, got %v", err)
	}
}
