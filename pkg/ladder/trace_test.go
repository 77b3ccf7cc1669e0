package ladder

import (
	"slices"
	"testing"
)

func TestTraceAllFixtures(t *testing.T) {
	tests := []struct {
		name  string
		cols  int
		rows  int
		rungs []Rung
		want  []int
	}{
		{
			name: "NoRungs",
			cols: 3, rows: 4,
			want: []int{0, 1, 2},
		},
		{
			name: "SingleSwap",
			cols: 2, rows: 2,
			rungs: []Rung{{Row: 1, Column: 0}},
			want:  []int{1, 0},
		},
		{
			name: "Cascade",
			cols: 3, rows: 2,
			rungs: []Rung{{Row: 0, Column: 0}, {Row: 1, Column: 1}},
			want:  []int{2, 0, 1},
		},
		{
			name: "CancelingPair",
			cols: 3, rows: 3,
			rungs: []Rung{{Row: 1, Column: 0}, {Row: 2, Column: 0}},
			want:  []int{0, 1, 2},
		},
		{
			name: "ParallelRungsSameRow",
			cols: 4, rows: 1,
			rungs: []Rung{{Row: 0, Column: 0}, {Row: 0, Column: 2}},
			want:  []int{1, 0, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(tt.cols, tt.rows)
			for _, r := range tt.rungs {
				g.set(r.Row, r.Column)
			}
			if got := traceAll(g); !slices.Equal(got, tt.want) {
				t.Errorf("traceAll = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLadderTraceMatchesMapping(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e", "f"}
	results := []string{"1", "2", "3", "4", "5", "6"}

	l, err := Generate(participants, results, NewSeededSource(11), Config{})
	if err != nil {
		t.Fatal(err)
	}

	for col := range l.Columns {
		if got := l.Trace(col); got != l.Mapping[col] {
			t.Errorf("Trace(%d) = %d, Mapping[%d] = %d", col, got, col, l.Mapping[col])
		}
	}
}

func TestWalkWaypoints(t *testing.T) {
	l := &Ladder{
		Participants: []string{"a", "b", "c"},
		Results:      []string{"x", "y", "z"},
		Columns:      3,
		Rows:         2,
		Rungs:        []Rung{{Row: 0, Column: 0}, {Row: 1, Column: 1}},
		Mapping:      []int{2, 0, 1},
	}

	want := []Waypoint{
		{Column: 0, Row: -1},
		{Column: 0, Row: 0, Tag: TagBeforeMove},
		{Column: 1, Row: 0, Tag: TagAfterMove},
		{Column: 1, Row: 1, Tag: TagBeforeMove},
		{Column: 2, Row: 1, Tag: TagAfterMove},
		{Column: 2, Row: 2},
	}

	got := slices.Collect(l.Walk(0))
	if !slices.Equal(got, want) {
		t.Errorf("Walk(0) = %v, want %v", got, want)
	}

	// The sequence is restartable: a second range yields the same path.
	again := slices.Collect(l.Walk(0))
	if !slices.Equal(again, got) {
		t.Errorf("second Walk(0) = %v, want %v", again, got)
	}
}

func TestWalkStraightColumn(t *testing.T) {
	l := &Ladder{
		Columns: 3,
		Rows:    2,
		Rungs:   []Rung{{Row: 1, Column: 1}},
		Mapping: []int{0, 2, 1},
	}

	// Column 0 never meets a rung: one waypoint per row plus both sentinels.
	got := slices.Collect(l.Walk(0))
	want := []Waypoint{
		{Column: 0, Row: -1},
		{Column: 0, Row: 0},
		{Column: 0, Row: 1},
		{Column: 0, Row: 2},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Walk(0) = %v, want %v", got, want)
	}
}

func TestWalkOutOfRange(t *testing.T) {
	l := &Ladder{Columns: 2, Rows: 3}
	if got := slices.Collect(l.Walk(5)); len(got) != 0 {
		t.Errorf("Walk(5) yielded %v, want nothing", got)
	}
	if got := slices.Collect(l.Walk(-1)); len(got) != 0 {
		t.Errorf("Walk(-1) yielded %v, want nothing", got)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	l := &Ladder{Columns: 2, Rows: 5, Mapping: []int{0, 1}}

	count := 0
	for range l.Walk(0) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("stopped after %d waypoints, want 2", count)
	}
}
