package casting

import (
	"errors"
	"testing"
)

func TestAnalyze(t *testing.T) {
	details := []Detail{
		{Player: "Ada", Character: "Spy", Rank: 1, Points: 5},
		{Player: "Ben", Character: "Knight", Rank: 2, Points: 4},
		{Player: "Cat", Character: "Healer", Rank: 4, Points: 2},
		{Player: "Dan", Character: "Bard", Rank: Unranked, Points: 0},
		{Player: "Eve", Character: "Mage", Rank: 1, Points: 5},
	}

	rep, err := Analyze(details, 5, 0)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if rep.TotalScore != 16 {
		t.Errorf("TotalScore = %d, want 16", rep.TotalScore)
	}
	if rep.MeanScore != 3.2 {
		t.Errorf("MeanScore = %f, want 3.2", rep.MeanScore)
	}
	if rep.FirstChoice != 2 {
		t.Errorf("FirstChoice = %d, want 2", rep.FirstChoice)
	}
	if rep.TopThree != 3 {
		t.Errorf("TopThree = %d, want 3", rep.TopThree)
	}
	if rep.RankCounts[1] != 2 || rep.RankCounts[4] != 1 || rep.RankCounts[Unranked] != 1 {
		t.Errorf("RankCounts = %v", rep.RankCounts)
	}
	if rep.AllWithinThreshold {
		t.Error("AllWithinThreshold = true, want false (Cat got rank 4, Dan unranked)")
	}
	if len(rep.Unsatisfied) != 2 {
		t.Errorf("Unsatisfied = %v, want 2 entries", rep.Unsatisfied)
	}
}

func TestAnalyzeCustomThreshold(t *testing.T) {
	details := []Detail{
		{Player: "Ada", Character: "Spy", Rank: 1, Points: 3},
		{Player: "Ben", Character: "Knight", Rank: 2, Points: 2},
		{Player: "Cat", Character: "Healer", Rank: 3, Points: 1},
	}

	rep, err := Analyze(details, 3, 1)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if rep.AllWithinThreshold {
		t.Error("threshold 1 should flag rank 2 and 3 assignments")
	}
	if len(rep.Unsatisfied) != 2 {
		t.Errorf("Unsatisfied = %v, want 2 entries", rep.Unsatisfied)
	}
}

func TestAnalyzeInvalidDetail(t *testing.T) {
	details := []Detail{{Player: "Ada", Character: "Spy", Rank: 7, Points: 1}}

	_, err := Analyze(details, 5, 0)
	var bad *InvalidAssignmentDetailError
	if !errors.As(err, &bad) {
		t.Fatalf("error = %v, want InvalidAssignmentDetailError", err)
	}
	if bad.Player != "Ada" || bad.Rank != 7 {
		t.Errorf("error context = %q/%d, want Ada/7", bad.Player, bad.Rank)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	rep, err := Analyze(nil, 0, 0)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if rep.MeanScore != 0 || rep.TotalScore != 0 {
		t.Errorf("empty analysis should be all zero, got %+v", rep)
	}
}
