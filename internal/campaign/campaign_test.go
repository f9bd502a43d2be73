package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/drillz/internal/scenario"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		idx  int
		want float64
	}{
		{0, 0.85},
		{3, 0.91},
		{5, 0.95},
		{7, 0.99},
		{8, 1.0},
		{20, 1.0},
		{-1, 0.85},
	}
	for _, tt := range tests {
		if got := Threshold(tt.idx); got != tt.want {
			t.Errorf("Threshold(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
	if 19.0/20.0 < Threshold(5) {
		t.Error("19/20 should meet the level-5 threshold")
	}
}

func levelsN(n int) []Level {
	out := make([]Level, n)
	for i := range out {
		out[i] = Level{ID: string(rune('a' + i)), OrderIndex: i, DifficultyIndex: i}
	}
	return out
}

func TestComputeLevelCards(t *testing.T) {
	levels := levelsN(3)
	tests := []struct {
		name     string
		progress map[string]LevelProgress
		unlocked []bool
		mastered []bool
	}{
		{
			name:     "no progress",
			progress: nil,
			unlocked: []bool{true, false, false},
			mastered: []bool{false, false, false},
		},
		{
			name:     "passed level 0",
			progress: map[string]LevelProgress{"a": {BestAccuracy: 0.90, IsUnlocked: true}},
			unlocked: []bool{true, true, false},
			mastered: []bool{true, false, false},
		},
		{
			name:     "failed level 0",
			progress: map[string]LevelProgress{"a": {BestAccuracy: 0.50}},
			unlocked: []bool{true, false, false},
			mastered: []bool{false, false, false},
		},
		{
			name:     "accuracy alone unlocks",
			progress: map[string]LevelProgress{"a": {BestAccuracy: 0.85}},
			unlocked: []bool{true, true, false},
			mastered: []bool{true, false, false},
		},
		{
			name:     "flag alone unlocks",
			progress: map[string]LevelProgress{"a": {BestAccuracy: 0.4, IsUnlocked: true}},
			unlocked: []bool{true, true, false},
			mastered: []bool{false, false, false},
		},
		{
			name: "chain",
			progress: map[string]LevelProgress{
				"a": {BestAccuracy: 1, IsUnlocked: true},
				"b": {BestAccuracy: 0.87},
			},
			unlocked: []bool{true, true, true},
			mastered: []bool{true, true, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := ComputeLevelCards(levels, tt.progress)
			for i, c := range cards {
				if c.Unlocked != tt.unlocked[i] {
					t.Errorf("card %d unlocked = %v, want %v", i, c.Unlocked, tt.unlocked[i])
				}
				if c.Mastered != tt.mastered[i] {
					t.Errorf("card %d mastered = %v, want %v", i, c.Mastered, tt.mastered[i])
				}
			}
		})
	}
}

func TestSortLevels_TieBreaks(t *testing.T) {
	in := []Level{
		{ID: "z", OrderIndex: 1, StakeDepth: 100, Position: "BTN"},
		{ID: "y", OrderIndex: 1, StakeDepth: 200, Position: "UTG"},
		{ID: "x", OrderIndex: 1, StakeDepth: 100, Position: "BB"},
		{ID: "w", OrderIndex: 0},
		{ID: "v", OrderIndex: 1, StakeDepth: 100, Position: "BB"},
	}
	got := SortLevels(in)
	want := []string{"w", "y", "v", "x", "z"}
	for i, l := range got {
		if l.ID != want[i] {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
	if in[0].ID != "z" {
		t.Error("SortLevels modified its input")
	}
}

func ids(levels []Level) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = l.ID
	}
	return out
}

func TestNextLevel(t *testing.T) {
	levels := levelsN(3)
	next, ok := NextLevel(levels, "a")
	if !ok || next.ID != "b" {
		t.Errorf("NextLevel(a) = %v, %v", next.ID, ok)
	}
	if _, ok := NextLevel(levels, "c"); ok {
		t.Error("last level should have no successor")
	}
}

func TestMergeProgress(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	existing := LevelProgress{BestAccuracy: 0.95, IsUnlocked: true, TimesPlayed: 2, LastPlayedAt: t1}
	got := MergeProgress(existing, LevelProgress{BestAccuracy: 0.6, TimesPlayed: 1, LastPlayedAt: t2})
	if got.BestAccuracy != 0.95 {
		t.Errorf("BestAccuracy = %v, want 0.95 (never lowered)", got.BestAccuracy)
	}
	if !got.IsUnlocked {
		t.Error("unlock flag must be sticky")
	}
	if got.TimesPlayed != 3 {
		t.Errorf("TimesPlayed = %d, want 3", got.TimesPlayed)
	}
	if !got.LastPlayedAt.Equal(t2) {
		t.Errorf("LastPlayedAt = %v, want %v", got.LastPlayedAt, t2)
	}
}

func TestMergeProgress_SameSessionCountsOnce(t *testing.T) {
	update := LevelProgress{BestAccuracy: 0.9, TimesPlayed: 1, LastSessionID: "s1"}
	once := MergeProgress(LevelProgress{}, update)
	twice := MergeProgress(once, update)
	if twice.TimesPlayed != 1 {
		t.Errorf("TimesPlayed = %d after replay, want 1", twice.TimesPlayed)
	}
	if next := MergeProgress(twice, LevelProgress{TimesPlayed: 1, LastSessionID: "s2"}); next.TimesPlayed != 2 {
		t.Errorf("TimesPlayed = %d, want 2", next.TimesPlayed)
	}
}

func TestCampaign_ContentExists(t *testing.T) {
	levels := Campaign()
	if len(levels) != 10 {
		t.Fatalf("expected 10 levels, got %d", len(levels))
	}
	for i, l := range levels {
		if l.DifficultyIndex != i {
			t.Errorf("level %s difficulty %d, want %d", l.ID, l.DifficultyIndex, i)
		}
		if _, err := scenario.BuiltinLibrary().Load(context.Background(), l.ScenarioSetRef); err != nil {
			t.Errorf("level %s: %v", l.ID, err)
		}
	}
}
