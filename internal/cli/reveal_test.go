package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amidalab/amidakuji/pkg/ladder"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func revealLadder(t *testing.T) *ladder.Ladder {
	t.Helper()
	l, err := ladder.Generate(
		[]string{"alice", "bob", "carol"},
		[]string{"coffee", "tea", "cocoa"},
		ladder.NewSeededSource(9), ladder.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRevealModelWalksToResult(t *testing.T) {
	l := revealLadder(t)
	m := newRevealModel(l, 1)

	if len(m.waypoints) < 2 {
		t.Fatalf("expected waypoints, got %d", len(m.waypoints))
	}
	if m.finished() {
		t.Fatal("fresh model should not be finished")
	}

	// The walk must end at the column the stored mapping names.
	last := m.waypoints[len(m.waypoints)-1]
	if last.Column != l.Mapping[1] {
		t.Errorf("walk ends at column %d, mapping says %d", last.Column, l.Mapping[1])
	}

	// Step through every waypoint.
	for range m.waypoints {
		next, _ := m.Update(revealTickMsg{})
		m = next.(revealModel)
	}
	if !m.finished() {
		t.Error("model should be finished after stepping through all waypoints")
	}
}

func TestRevealModelViewShowsResultWhenDone(t *testing.T) {
	l := revealLadder(t)
	m := newRevealModel(l, 0)

	if view := m.View(); strings.Contains(view, l.Results[l.Mapping[0]]) {
		t.Error("result should be hidden before the walk completes")
	}

	m.step = len(m.waypoints)
	if view := m.View(); !strings.Contains(view, l.Results[l.Mapping[0]]) {
		t.Error("finished view should show the result")
	}
}

func TestRevealModelQuitKeys(t *testing.T) {
	l := revealLadder(t)
	m := newRevealModel(l, 0)

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if !next.(revealModel).quitting {
		t.Error("model should be quitting after q")
	}
}
